package shroud

import "math"

// Tolerances are the user tunable shroud parameters. Lengths are in millimetres.
type Tolerances struct {
	// PinDepthClearance is extra hole depth beyond the pin length.
	PinDepthClearance float64 `yaml:"pin_depth_clearance" env:"PIN_DEPTH_CLEARANCE"`
	// TopSurfaceThickness is the solid material left under standard pins.
	// It becomes the base of the part in print orientation.
	TopSurfaceThickness float64 `yaml:"top_surface_thickness" env:"TOP_SURFACE_THICKNESS"`
	StandardHoleWidth   float64 `yaml:"standard_hole_width" env:"STANDARD_HOLE_WIDTH"`
	JumperHoleWidth     float64 `yaml:"jumper_hole_width" env:"JUMPER_HOLE_WIDTH"`
	WallThickness       float64 `yaml:"wall_thickness" env:"WALL_THICKNESS"`

	ChamferEnabled      bool    `yaml:"chamfer_enabled" env:"CHAMFER_ENABLED"`
	ChamferWidthPerSide float64 `yaml:"chamfer_width_per_side" env:"CHAMFER_WIDTH_PER_SIDE"`
	ChamferDepth        float64 `yaml:"chamfer_depth" env:"CHAMFER_DEPTH"`

	RemoveMiddleChannel bool `yaml:"remove_middle_channel" env:"REMOVE_MIDDLE_CHANNEL"`
	// MiddleChannelSeparation is the wall left between the middle channel and jumper holes.
	MiddleChannelSeparation float64 `yaml:"middle_channel_separation" env:"MIDDLE_CHANNEL_SEPARATION"`
	// MiddleLengthOffset lengthens (positive) or shortens (negative) the middle channel.
	MiddleLengthOffset float64 `yaml:"middle_length_offset" env:"MIDDLE_LENGTH_OFFSET"`
}

// DefaultTolerances returns parameters that print well in PLA for ~0.64mm square pins.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PinDepthClearance:       0.5,
		TopSurfaceThickness:     1.5,
		StandardHoleWidth:       1.0,
		JumperHoleWidth:         3.0,
		WallThickness:           2.0,
		ChamferEnabled:          true,
		ChamferWidthPerSide:     0.3,
		ChamferDepth:            0.5,
		RemoveMiddleChannel:     true,
		MiddleChannelSeparation: 0.5,
		MiddleLengthOffset:      0,
	}
}

// Validate checks all lengths are finite and non-negative.
// MiddleLengthOffset is signed and only needs to be finite.
func (t Tolerances) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pin_depth_clearance", t.PinDepthClearance},
		{"top_surface_thickness", t.TopSurfaceThickness},
		{"standard_hole_width", t.StandardHoleWidth},
		{"jumper_hole_width", t.JumperHoleWidth},
		{"wall_thickness", t.WallThickness},
		{"chamfer_width_per_side", t.ChamferWidthPerSide},
		{"chamfer_depth", t.ChamferDepth},
		{"middle_channel_separation", t.MiddleChannelSeparation},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, "got %g, must be finite", f.v)
		}
		if f.v < 0 {
			return invalid(f.name, "got %g, must not be negative", f.v)
		}
	}
	if math.IsNaN(t.MiddleLengthOffset) || math.IsInf(t.MiddleLengthOffset, 0) {
		return invalid("middle_length_offset", "got %g, must be finite", t.MiddleLengthOffset)
	}
	return nil
}

// chamfered reports whether chamfer cutters are planned.
func (t Tolerances) chamfered() bool {
	return t.ChamferEnabled && t.ChamferWidthPerSide > epsilon && t.ChamferDepth > epsilon
}
