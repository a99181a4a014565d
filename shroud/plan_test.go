package shroud_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nathanworms/3dprints/shroud"
)

func TestNewPlanCounts(t *testing.T) {
	b := amica(t)
	for _, test := range []struct {
		name     string
		modify   func(*shroud.Tolerances)
		jumpers  []string
		standard int
		jumper   int
		chamfers int
		middle   int
		warnings int
	}{
		{name: "defaults", jumpers: accessPins, standard: 24, jumper: 6, chamfers: 30, middle: 1},
		{name: "no jumpers", standard: 30, chamfers: 30, middle: 1},
		{name: "unknown jumper", jumpers: []string{"NOPE", "VIN"}, standard: 29, jumper: 1, chamfers: 30, middle: 1, warnings: 1},
		{
			name:     "chamfer disabled",
			modify:   func(t *shroud.Tolerances) { t.ChamferEnabled = false },
			jumpers:  accessPins,
			standard: 24, jumper: 6, middle: 1,
		},
		{
			name:     "chamfer too shallow",
			modify:   func(t *shroud.Tolerances) { t.ChamferDepth = 0.0005 },
			standard: 30, middle: 1,
		},
		{
			name:     "middle channel disabled",
			modify:   func(t *shroud.Tolerances) { t.RemoveMiddleChannel = false },
			standard: 30, chamfers: 30,
		},
		{
			name:     "middle channel too narrow",
			modify:   func(t *shroud.Tolerances) { t.MiddleChannelSeparation = 20 },
			jumpers:  accessPins,
			standard: 24, jumper: 6, chamfers: 30, warnings: 1,
		},
		{
			name:     "middle channel too short",
			modify:   func(t *shroud.Tolerances) { t.MiddleLengthOffset = -40 },
			standard: 30, chamfers: 30, warnings: 1,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			tol := shroud.DefaultTolerances()
			if test.modify != nil {
				test.modify(&tol)
			}
			p, err := shroud.NewPlan(b, tol, test.jumpers)
			if err != nil {
				t.Fatal(err)
			}
			for _, c := range []struct {
				kind shroud.CutterKind
				want int
			}{
				{shroud.StandardHole, test.standard},
				{shroud.JumperHole, test.jumper},
				{shroud.Chamfer, test.chamfers},
				{shroud.MiddleChannel, test.middle},
			} {
				if got := p.Count(c.kind); got != c.want {
					t.Errorf("got %d %s cutters, want %d", got, c.kind, c.want)
				}
			}
			if len(p.Cutters) != test.standard+test.jumper+test.chamfers+test.middle {
				t.Errorf("unexpected cutter total %d", len(p.Cutters))
			}
			if len(p.Warnings) != test.warnings {
				t.Errorf("got warnings %v, want %d", p.Warnings, test.warnings)
			}
		})
	}
}

func TestNewPlanOrder(t *testing.T) {
	b := amica(t)
	p, err := shroud.NewPlan(b, shroud.DefaultTolerances(), accessPins)
	if err != nil {
		t.Fatal(err)
	}
	holes := 2 * b.PinsPerRow
	for i, c := range p.Cutters {
		switch {
		case i < holes:
			if c.Kind != shroud.StandardHole && c.Kind != shroud.JumperHole {
				t.Fatalf("cutter %d is %s, want a hole", i, c.Kind)
			}
			want := shroud.Pin{Row: i / b.PinsPerRow, Index: i % b.PinsPerRow}
			if c.Pin != want {
				t.Fatalf("hole %d is for pin %v, want %v", i, c.Pin, want)
			}
		case i < 2*holes:
			if c.Kind != shroud.Chamfer || c.Pin != p.Cutters[i-holes].Pin {
				t.Fatalf("cutter %d is %s for %v, want chamfer for %v", i, c.Kind, c.Pin, p.Cutters[i-holes].Pin)
			}
		default:
			if c.Kind != shroud.MiddleChannel || i != len(p.Cutters)-1 {
				t.Fatalf("cutter %d is %s, want trailing middle channel", i, c.Kind)
			}
		}
	}
	names := make(map[string]bool)
	for _, c := range p.Cutters {
		if names[c.Name()] {
			t.Errorf("duplicate cutter name %s", c.Name())
		}
		names[c.Name()] = true
	}
}

func TestNewPlanGeometry(t *testing.T) {
	const tol = 1e-9
	b := amica(t)
	p, err := shroud.NewPlan(b, shroud.DefaultTolerances(), accessPins)
	if err != nil {
		t.Fatal(err)
	}
	d := p.Dims
	near := func(a, b float64) bool { return math.Abs(a-b) < tol }
	if !near(p.Base.Size.X, 40.56) || !near(p.Base.Size.Y, 27.86) || !near(p.Base.Size.Z, 8) || !near(p.Base.Min().Z, 0) {
		t.Errorf("unexpected base block %+v", p.Base)
	}
	for _, c := range p.Cutters {
		xy := shroud.PinPosition(b, d, c.Pin.Row, c.Pin.Index)
		switch c.Kind {
		case shroud.StandardHole:
			if !near(c.Size.X, 1) || !near(c.Size.Z, 6.5) || !near(c.Max().Z, 8) || !near(c.Min().Z, 1.5) {
				t.Errorf("%s: unexpected box %+v", c.Name(), c)
			}
		case shroud.JumperHole:
			if !near(c.Size.X, 3) || !near(c.Min().Z, 0) || !near(c.Max().Z, 8) {
				t.Errorf("%s: jumper hole is not a through hole: %+v", c.Name(), c)
			}
		case shroud.Chamfer:
			hole := 1.0
			if isJumper(p, c.Pin) {
				hole = 3
			}
			if !near(c.Size.X, hole+0.6) || !near(c.Size.Z, 0.5) || !near(c.Max().Z, 8) {
				t.Errorf("%s: unexpected chamfer %+v", c.Name(), c)
			}
		case shroud.MiddleChannel:
			if !near(c.Size.X, 31.56) || !near(c.Size.Y, 18.86) || !near(c.Size.Z, 8) || c.Center.X != 0 || c.Center.Y != 0 {
				t.Errorf("unexpected middle channel %+v", c)
			}
			continue
		}
		if c.Center.X != xy.X || c.Center.Y != xy.Y {
			t.Errorf("%s: centered at %v, pin at %v", c.Name(), c.Center, xy)
		}
		if c.Size.X != c.Size.Y {
			t.Errorf("%s: hole is not square", c.Name())
		}
	}
}

func isJumper(p shroud.Plan, pin shroud.Pin) bool {
	for _, j := range p.Jumpers {
		if j == pin {
			return true
		}
	}
	return false
}

func TestNewPlanDeterministic(t *testing.T) {
	b := amica(t)
	p1, err := shroud.NewPlan(b, shroud.DefaultTolerances(), append([]string{"NOPE"}, accessPins...))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := shroud.NewPlan(b, shroud.DefaultTolerances(), append([]string{"NOPE"}, accessPins...))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("plans differ (-first +second):\n%s", diff)
	}
}

func TestNewPlanDegenerate(t *testing.T) {
	b := amica(t)
	tol := shroud.DefaultTolerances()
	tol.StandardHoleWidth = 0
	_, err := shroud.NewPlan(b, tol, nil)
	var degenerate *shroud.DegenerateCutterError
	if !errors.As(err, &degenerate) {
		t.Fatalf("got %v, want *DegenerateCutterError", err)
	}
	if degenerate.Cutter.Kind != shroud.StandardHole || degenerate.Cutter.Pin != (shroud.Pin{}) {
		t.Errorf("unexpected degenerate cutter %s", degenerate.Cutter.Name())
	}

	// Jumper holes keep their own width so a through hole stays valid.
	tol = shroud.DefaultTolerances()
	tol.JumperHoleWidth = 0
	tol.RemoveMiddleChannel = false
	if _, err := shroud.NewPlan(b, tol, nil); err != nil {
		t.Errorf("unused zero jumper width: %v", err)
	}
	_, err = shroud.NewPlan(b, tol, []string{"VIN"})
	if !errors.As(err, &degenerate) || degenerate.Cutter.Kind != shroud.JumperHole {
		t.Errorf("got %v, want degenerate jumper hole", err)
	}
}

func TestNewPlanInvalid(t *testing.T) {
	b := amica(t)
	b.PinsPerRow = 0
	var verr *shroud.ValidationError
	if _, err := shroud.NewPlan(b, shroud.DefaultTolerances(), nil); !errors.As(err, &verr) {
		t.Errorf("got %v, want *ValidationError", err)
	}
	tol := shroud.DefaultTolerances()
	tol.TopSurfaceThickness = -1
	if _, err := shroud.NewPlan(amica(t), tol, nil); !errors.As(err, &verr) {
		t.Errorf("got %v, want *ValidationError", err)
	}
}
