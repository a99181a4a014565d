package shroud

import (
	"fmt"
	"strings"
)

// UnknownBoardError is returned when a board name is not present in a catalog.
// It is returned before any geometry is created.
type UnknownBoardError struct {
	Name      string
	Available []string
}

func (e *UnknownBoardError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("board %q not found in catalog", e.Name)
	}
	return fmt.Sprintf("board %q not found in catalog, available boards: %s", e.Name, strings.Join(e.Available, ", "))
}

// UnresolvedJumperPinWarning reports a jumper pin name absent from a board's pin map.
// The pin is skipped and generation continues.
type UnresolvedJumperPinWarning struct {
	Board string
	Name  string
}

func (w *UnresolvedJumperPinWarning) Error() string {
	return fmt.Sprintf("jumper pin %q not found in %s pin map, skipping", w.Name, w.Board)
}

// SkippedCutterWarning reports an optional cutter left out of a plan because
// its computed size leaves nothing to remove.
type SkippedCutterWarning struct {
	Kind   CutterKind
	Length float64
	Width  float64
}

func (w *SkippedCutterWarning) Error() string {
	return fmt.Sprintf("skipping %s: calculated width (%.2fmm) or length (%.2fmm) is too small or negative", w.Kind, w.Width, w.Length)
}

// DegenerateCutterError is returned when a planned solid has a zero or negative size component.
type DegenerateCutterError struct {
	Cutter Cutter
}

func (e *DegenerateCutterError) Error() string {
	s := e.Cutter.Size
	return fmt.Sprintf("degenerate cutter %s: size %.4gx%.4gx%.4g must be positive", e.Cutter.Name(), s.X, s.Y, s.Z)
}

// BooleanOperationError is returned when a backend fails to create or subtract
// a cutter. Applied lists the cutters that were subtracted before the failure,
// which are reflected in the last-good solid.
type BooleanOperationError struct {
	Cutter  Cutter
	Applied []Cutter
	Err     error
}

func (e *BooleanOperationError) Error() string {
	return fmt.Sprintf("boolean difference with %s failed after %d cutters applied: %v", e.Cutter.Name(), len(e.Applied), e.Err)
}

func (e *BooleanOperationError) Unwrap() error { return e.Err }

// ValidationError reports an invalid board definition or tolerance set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
