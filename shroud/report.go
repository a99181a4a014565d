package shroud

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteReport writes a human readable summary of a plan to w.
func WriteReport(w io.Writer, p Plan) error {
	bw := bufio.NewWriter(w)
	t, d := p.Tolerances, p.Dims
	fmt.Fprintf(bw, "--- %s Shroud ---\n", p.Board.Name)
	fmt.Fprintf(bw, "Overall Dimensions (LxWxH): %.2f x %.2f x %.2f mm\n", d.OuterLength, d.OuterWidth, d.TotalHeight)
	fmt.Fprintf(bw, "Internal Pin Depth for Standard Pins: %.2f mm\n", d.InternalPinDepth)
	fmt.Fprintf(bw, "Base Thickness (solid part on print bed): %.2f mm\n", t.TopSurfaceThickness)
	fmt.Fprintf(bw, "Standard Pin Hole Square Width: %.2f mm\n", t.StandardHoleWidth)
	fmt.Fprintf(bw, "Jumper Cutout Square Width: %.2f mm\n", t.JumperHoleWidth)
	if t.chamfered() {
		fmt.Fprintf(bw, "Pin Hole Opening Chamfer: Enabled (Enlargement per side: %.2f mm, Depth: %.2f mm)\n", t.ChamferWidthPerSide, t.ChamferDepth)
	}
	fmt.Fprintf(bw, "Wall Thickness: %.2f mm\n", t.WallThickness)
	if len(p.Jumpers) > 0 {
		coords := make([]string, len(p.Jumpers))
		for i, pin := range p.Jumpers {
			coords[i] = pin.String()
		}
		fmt.Fprintf(bw, "Jumper access cutouts (Row Index, Pin Index in Row): %s\n", strings.Join(coords, ", "))
	} else {
		fmt.Fprintln(bw, "No jumper access pins were mapped or specified.")
	}
	fmt.Fprintf(bw, "Cutters: %d holes, %d chamfers, %d middle channel\n",
		p.Count(StandardHole)+p.Count(JumperHole), p.Count(Chamfer), p.Count(MiddleChannel))
	for _, w := range p.Warnings {
		fmt.Fprintf(bw, "Warning: %v\n", w)
	}
	return bw.Flush()
}

// Report returns the summary written by WriteReport.
func Report(p Plan) string {
	var sb strings.Builder
	WriteReport(&sb, p)
	return sb.String()
}
