package shroud

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// CutterKind identifies what a planned box is for.
type CutterKind int

const (
	// BaseBlock is the initial solid the cutters are subtracted from.
	BaseBlock CutterKind = iota
	StandardHole
	JumperHole
	Chamfer
	MiddleChannel
)

func (k CutterKind) String() string {
	switch k {
	case BaseBlock:
		return "base block"
	case StandardHole:
		return "standard hole"
	case JumperHole:
		return "jumper hole"
	case Chamfer:
		return "chamfer"
	case MiddleChannel:
		return "middle channel"
	}
	return fmt.Sprintf("CutterKind(%d)", int(k))
}

// Cutter is an axis aligned box in shroud coordinates.
// Size.X is the length along the rows, Size.Y the width across the rows
// and Size.Z the depth.
type Cutter struct {
	Kind CutterKind
	// Pin is the pin the cutter belongs to. Only meaningful for holes and chamfers.
	Pin    Pin
	Center r3.Vec
	Size   r3.Vec
}

// Name returns a label for the cutter, unique within a plan.
func (c Cutter) Name() string {
	switch c.Kind {
	case StandardHole:
		return fmt.Sprintf("Cutter_R%d_P%d_Standard", c.Pin.Row, c.Pin.Index)
	case JumperHole:
		return fmt.Sprintf("Cutter_R%d_P%d_Jumper", c.Pin.Row, c.Pin.Index)
	case Chamfer:
		return fmt.Sprintf("Chamfer_R%d_P%d", c.Pin.Row, c.Pin.Index)
	case MiddleChannel:
		return "MiddleMaterialCutter"
	case BaseBlock:
		return "Base"
	}
	return c.Kind.String()
}

// Min returns the lower corner of the box.
func (c Cutter) Min() r3.Vec { return r3.Sub(c.Center, r3.Scale(0.5, c.Size)) }

// Max returns the upper corner of the box.
func (c Cutter) Max() r3.Vec { return r3.Add(c.Center, r3.Scale(0.5, c.Size)) }

func (c Cutter) validate() error {
	if !(c.Size.X > 0) || !(c.Size.Y > 0) || !(c.Size.Z > 0) {
		return &DegenerateCutterError{Cutter: c}
	}
	return nil
}

// Plan is the ordered list of boxes that build a shroud: the base block
// followed by every cutter in subtraction order.
type Plan struct {
	Board      BoardSpec
	Tolerances Tolerances
	Dims       Dimensions
	Base       Cutter
	// Cutters are ordered holes first (row 0 then row 1, index ascending),
	// then chamfers in the same order, then the middle channel.
	Cutters []Cutter
	// Jumpers are the resolved jumper access pins, sorted row-major.
	Jumpers []Pin
	// Warnings are non-fatal: unresolved jumper pins and skipped cutters.
	Warnings []error
}

// NewPlan validates its inputs and enumerates the shroud's cutters.
// It fails with *DegenerateCutterError if any box would have a non-positive size.
func NewPlan(b BoardSpec, t Tolerances, jumperNames []string) (Plan, error) {
	if err := b.Validate(); err != nil {
		return Plan{}, err
	}
	if err := t.Validate(); err != nil {
		return Plan{}, err
	}
	d := Derive(b, t)
	p := Plan{
		Board:      b,
		Tolerances: t,
		Dims:       d,
		Base: Cutter{
			Kind:   BaseBlock,
			Center: r3.Vec{Z: d.TotalHeight / 2},
			Size:   r3.Vec{X: d.OuterLength, Y: d.OuterWidth, Z: d.TotalHeight},
		},
	}
	if err := p.Base.validate(); err != nil {
		return Plan{}, err
	}
	p.Jumpers, p.Warnings = ResolveJumperPins(b, jumperNames)
	isJumper := make(map[Pin]bool, len(p.Jumpers))
	for _, pin := range p.Jumpers {
		isJumper[pin] = true
	}

	holes := make([]Cutter, 0, 2*b.PinsPerRow)
	for row := 0; row < 2; row++ {
		for index := 0; index < b.PinsPerRow; index++ {
			pin := Pin{Row: row, Index: index}
			xy := PinPosition(b, d, row, index)
			c := Cutter{Kind: StandardHole, Pin: pin}
			width, depth, z := t.StandardHoleWidth, d.InternalPinDepth, d.TotalHeight-d.InternalPinDepth/2
			if isJumper[pin] {
				// Jumper access goes all the way through the part.
				c.Kind = JumperHole
				width, depth, z = t.JumperHoleWidth, d.TotalHeight, d.TotalHeight/2
			}
			c.Center = r3.Vec{X: xy.X, Y: xy.Y, Z: z}
			c.Size = r3.Vec{X: width, Y: width, Z: depth}
			if err := c.validate(); err != nil {
				return Plan{}, err
			}
			holes = append(holes, c)
		}
	}
	p.Cutters = append(p.Cutters, holes...)

	if t.chamfered() {
		for _, hole := range holes {
			// Chamfers always open from the top face.
			width := hole.Size.X + 2*t.ChamferWidthPerSide
			c := Cutter{
				Kind:   Chamfer,
				Pin:    hole.Pin,
				Center: r3.Vec{X: hole.Center.X, Y: hole.Center.Y, Z: d.TotalHeight - t.ChamferDepth/2},
				Size:   r3.Vec{X: width, Y: width, Z: t.ChamferDepth},
			}
			if err := c.validate(); err != nil {
				return Plan{}, err
			}
			p.Cutters = append(p.Cutters, c)
		}
	}

	if t.RemoveMiddleChannel {
		reduction := t.JumperHoleWidth + 2*t.MiddleChannelSeparation
		length := d.RowLength - reduction + t.MiddleLengthOffset
		width := b.RowSpacing - reduction
		// A non-positive length would be a degenerate cutter, so it is skipped like width.
		if width <= epsilon || length <= epsilon {
			p.Warnings = append(p.Warnings, &SkippedCutterWarning{Kind: MiddleChannel, Length: length, Width: width})
		} else {
			c := Cutter{
				Kind:   MiddleChannel,
				Center: r3.Vec{Z: d.TotalHeight / 2},
				Size:   r3.Vec{X: length, Y: width, Z: d.TotalHeight},
			}
			if err := c.validate(); err != nil {
				return Plan{}, err
			}
			p.Cutters = append(p.Cutters, c)
		}
	}
	return p, nil
}

// Count returns the number of cutters of kind k in the plan.
func (p Plan) Count(k CutterKind) (n int) {
	for _, c := range p.Cutters {
		if c.Kind == k {
			n++
		}
	}
	return n
}
