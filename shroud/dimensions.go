package shroud

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// epsilon is the smallest cutter dimension considered worth cutting, in millimetres.
const epsilon = 1e-3

// Dimensions are derived from a BoardSpec and Tolerances. They are
// recomputed for every plan and never cached across boards.
type Dimensions struct {
	// InternalPinDepth is the depth of a standard blind hole.
	InternalPinDepth float64
	TotalHeight      float64
	// RowLength is the distance between the first and last pin centers of a row.
	RowLength   float64
	OuterLength float64
	OuterWidth  float64
}

// Derive computes the shroud dimensions.
func Derive(b BoardSpec, t Tolerances) Dimensions {
	var d Dimensions
	d.InternalPinDepth = b.PinLength + t.PinDepthClearance
	d.TotalHeight = d.InternalPinDepth + t.TopSurfaceThickness
	d.RowLength = float64(b.PinsPerRow-1) * b.PinPitch
	d.OuterLength = d.RowLength + t.StandardHoleWidth + 2*t.WallThickness
	d.OuterWidth = b.RowSpacing + t.StandardHoleWidth + 2*t.WallThickness
	return d
}

// PinPosition returns the XY center of a pin. Pins are laid out about the
// origin: x runs along the row, y is given by the board's row sign.
func PinPosition(b BoardSpec, d Dimensions, row, index int) r2.Vec {
	return r2.Vec{
		X: -d.RowLength/2 + float64(index)*b.PinPitch,
		Y: float64(b.Signs()[row]) * b.RowSpacing / 2,
	}
}

// ResolveJumperPins maps pin names to pins. The result is deduplicated and
// sorted row-major so it does not depend on the order of names. Names missing
// from the pin map are skipped and reported as *UnresolvedJumperPinWarning.
func ResolveJumperPins(b BoardSpec, names []string) (pins []Pin, warnings []error) {
	seen := make(map[Pin]bool)
	for _, name := range names {
		p, ok := b.PinMap[name]
		if !ok {
			warnings = append(warnings, &UnresolvedJumperPinWarning{Board: b.Name, Name: name})
			continue
		}
		if !seen[p] {
			seen[p] = true
			pins = append(pins, p)
		}
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].less(pins[j]) })
	return pins, warnings
}
