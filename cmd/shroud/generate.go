package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nathanworms/3dprints/csg"
	"github.com/nathanworms/3dprints/csg/sdfxcsg"
	"github.com/nathanworms/3dprints/preview"
	"github.com/nathanworms/3dprints/render"
	"github.com/nathanworms/3dprints/shroud"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		backend string
		out     string
		png     string
		cells   int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the shroud and write it as STL",
		Long: `Builds the shroud with the selected geometry backend and writes a
binary STL file followed by a summary report.

Backends:
  csg  - exact box mesher, the STL has flat faces and sharp edges
  sdfx - github.com/deadsy/sdfx with marching cubes, resolution set by --cells`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.plan(cmd)
			if err != nil {
				return err
			}
			if out == "" {
				out = p.Board.Name + "_Shroud.stl"
			}
			log := a.log.With(zap.String("backend", backend), zap.String("out", out))
			switch backend {
			case "csg":
				b := csg.NewBackend()
				res, err := shroud.Generator{Backend: b, Log: log}.Generate(p)
				if err != nil {
					return err
				}
				r, err := render.NewGridRenderer(res.Solid.(*csg.Solid).SDF())
				if err != nil {
					return err
				}
				if err := render.CreateSTL(out, r); err != nil {
					return err
				}
			case "sdfx":
				b := &sdfxcsg.Backend{}
				res, err := shroud.Generator{Backend: b, Log: log}.Generate(p)
				if err != nil {
					return err
				}
				if err := sdfxcsg.WriteSTL(res.Solid, cells, out); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown backend %q, want csg or sdfx", backend)
			}
			log.Info("wrote STL")
			if png != "" {
				if err := preview.RenderPNG(out, png, preview.DefaultView); err != nil {
					return fmt.Errorf("preview: %w", err)
				}
				log.Info("wrote preview", zap.String("png", png))
			}
			return shroud.WriteReport(cmd.OutOrStdout(), p)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&backend, "backend", "csg", "geometry backend: csg or sdfx")
	flags.StringVarP(&out, "out", "o", "", "output STL path (default <board>_Shroud.stl)")
	flags.StringVar(&png, "preview", "", "also render a PNG preview to this path")
	flags.IntVar(&cells, "cells", 300, "sdfx mesh cells along the longest side")
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the report and cutter list without building geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.plan(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := shroud.WriteReport(w, p); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\nNAME\tKIND\tCENTER\tSIZE")
			for _, c := range append([]shroud.Cutter{p.Base}, p.Cutters...) {
				fmt.Fprintf(tw, "%s\t%s\t%.3f, %.3f, %.3f\t%.3f x %.3f x %.3f\n", c.Name(), c.Kind,
					c.Center.X, c.Center.Y, c.Center.Z, c.Size.X, c.Size.Y, c.Size.Z)
			}
			return tw.Flush()
		},
	}
}

func newBoardsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the boards in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			c, err := a.catalog(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPINS/ROW\tPITCH\tROW SPACING\tPIN LENGTH\tNAMED PINS")
			for _, name := range c.Names() {
				b, err := c.Lookup(name)
				if err != nil {
					return errors.New("bug: listed board not found")
				}
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%d\n", b.Name, b.PinsPerRow, b.PinPitch, b.RowSpacing, b.PinLength, len(b.PinMap))
			}
			return tw.Flush()
		},
	}
}
