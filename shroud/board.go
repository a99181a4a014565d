// Package shroud computes the parametric model of a 3D printable pin-header
// shroud for two-row dual-inline development boards and drives a CSG
// backend to build it.
//
// A shroud is a rectangular block with a blind square hole per header pin,
// through-holes for pins that need jumper access, optional lead-in chamfers
// at every hole opening and an optional channel removing the material
// between the two pin rows. The block is modelled in print orientation:
// the solid base sits on Z=0 and hole openings face +Z.
package shroud

import (
	"fmt"
	"sort"
)

// Pin locates a header pin by row (0 or 1) and index within the row.
type Pin struct {
	Row   int `yaml:"row"`
	Index int `yaml:"index"`
}

func (p Pin) String() string { return fmt.Sprintf("(%d, %d)", p.Row, p.Index) }

// less orders pins row-major.
func (p Pin) less(q Pin) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Index < q.Index
}

// BoardSpec describes the header geometry of a board. Lengths are in millimetres.
type BoardSpec struct {
	Name       string  `yaml:"name"`
	PinsPerRow int     `yaml:"pins_per_row"`
	PinPitch   float64 `yaml:"pin_pitch"`
	// RowSpacing is the centerline to centerline distance between the two rows.
	RowSpacing float64 `yaml:"row_spacing"`
	// PinLength is the length of metal exposed from the PCB.
	PinLength float64 `yaml:"pin_length"`
	// RowSign places each row on the -Y (-1) or +Y (+1) side of the shroud.
	// The zero value means {-1, +1}: row 0 at -Y.
	RowSign [2]int         `yaml:"row_sign,flow"`
	PinMap  map[string]Pin `yaml:"pin_map"`
}

// DefaultRowSign places row 0 at -Y and row 1 at +Y.
var DefaultRowSign = [2]int{-1, 1}

// Signs returns the row sign convention, resolving the zero value to DefaultRowSign.
func (b BoardSpec) Signs() [2]int {
	if b.RowSign == [2]int{} {
		return DefaultRowSign
	}
	return b.RowSign
}

// Validate checks the board definition is usable for planning.
func (b BoardSpec) Validate() error {
	switch {
	case b.Name == "":
		return invalid("name", "empty board name")
	case b.PinsPerRow < 1:
		return invalid(b.Name+".pins_per_row", "got %d, need at least 1", b.PinsPerRow)
	case !(b.PinPitch > 0):
		return invalid(b.Name+".pin_pitch", "got %g, must be positive", b.PinPitch)
	case !(b.RowSpacing > 0):
		return invalid(b.Name+".row_spacing", "got %g, must be positive", b.RowSpacing)
	case !(b.PinLength >= 0):
		return invalid(b.Name+".pin_length", "got %g, must not be negative", b.PinLength)
	}
	signs := b.Signs()
	for row, s := range signs {
		if s != -1 && s != 1 {
			return invalid(b.Name+".row_sign", "row %d sign is %d, must be -1 or +1", row, s)
		}
	}
	if signs[0] == signs[1] {
		return invalid(b.Name+".row_sign", "both rows on the same side (%d)", signs[0])
	}
	for _, name := range b.PinNames() {
		p := b.PinMap[name]
		if p.Row != 0 && p.Row != 1 {
			return invalid(b.Name+".pin_map."+name, "row %d out of range [0, 1]", p.Row)
		}
		if p.Index < 0 || p.Index >= b.PinsPerRow {
			return invalid(b.Name+".pin_map."+name, "index %d out of range [0, %d)", p.Index, b.PinsPerRow)
		}
	}
	return nil
}

// PinNames returns the pin map names sorted alphabetically.
func (b BoardSpec) PinNames() []string {
	names := make([]string, 0, len(b.PinMap))
	for name := range b.PinMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
