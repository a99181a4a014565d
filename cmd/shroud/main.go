// Command shroud generates 3D printable pin-header shrouds for dual
// inline development boards.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/nathanworms/3dprints/internal/config"
	"github.com/nathanworms/3dprints/shroud"
	"github.com/nathanworms/3dprints/shroud/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	configPath string
	board      string
	jumpers    []string
	catalogs   []string
	material   string
	verbose    bool

	log *zap.Logger
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "shroud",
		Short: "Generate pin-header shrouds for dual inline boards",
		Long: `Generates a rectangular block with a blind hole per header pin,
through-holes for jumper access pins, lead-in chamfers and an optional
channel between the pin rows, and exports it as STL.

Settings are read from defaults, then --config, then SHROUD_ prefixed
environment variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			cfg.Encoding = "console"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.log, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = a.log.With(zap.String("run", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(stdout)
	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&a.board, "board", "b", "", "board name, see the boards command")
	flags.StringSliceVarP(&a.jumpers, "jumpers", "j", nil, "comma separated pin names that get jumper access holes")
	flags.StringSliceVar(&a.catalogs, "catalog", nil, "YAML board catalog files to merge over the builtin boards")
	flags.StringVar(&a.material, "material", "", "compensate hole widths for material shrinkage (pla, none)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(a), newPlanCmd(a), newBoardsCmd(a))
	return root
}

// loadConfig merges command line flags over the file and environment configuration.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("board") {
		cfg.Board = a.board
	}
	if flags.Changed("jumpers") {
		cfg.JumperPins = a.jumpers
	}
	if flags.Changed("catalog") {
		cfg.CatalogFiles = append(cfg.CatalogFiles, a.catalogs...)
	}
	if flags.Changed("material") {
		cfg.Material = a.material
	}
	return cfg, cfg.Validate()
}

func (a *app) catalog(cfg config.Config) (*catalog.Catalog, error) {
	c := catalog.Builtin()
	for _, path := range cfg.CatalogFiles {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
		a.log.Debug("loaded board catalog", zap.String("path", path))
	}
	return c, nil
}

// plan resolves the configured board and computes its cutter plan.
func (a *app) plan(cmd *cobra.Command) (shroud.Plan, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return shroud.Plan{}, err
	}
	c, err := a.catalog(cfg)
	if err != nil {
		return shroud.Plan{}, err
	}
	board, err := c.Lookup(cfg.Board)
	if err != nil {
		return shroud.Plan{}, err
	}
	tol, err := cfg.EffectiveTolerances()
	if err != nil {
		return shroud.Plan{}, err
	}
	if cfg.Compensates() {
		a.log.Info("compensating hole widths", zap.String("material", cfg.Material),
			zap.Float64("standard", tol.StandardHoleWidth), zap.Float64("jumper", tol.JumperHoleWidth))
	}
	return shroud.NewPlan(board, tol, cfg.JumperPins)
}
