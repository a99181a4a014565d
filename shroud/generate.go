package shroud

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a handle to a piece of geometry owned by a Backend.
type Solid interface {
	Bounds() r3.Box
}

// Backend is a CSG geometry engine able to build boxes and subtract them.
// CreateBox and Subtract are atomic: on error no solid is created or modified.
type Backend interface {
	// CreateBox returns an axis aligned box of the given size centered at center.
	CreateBox(center, size r3.Vec) (Solid, error)
	// Subtract returns base with cutter removed. The cutter must not be used
	// afterwards except to Release it. base is left as it was on error.
	Subtract(base, cutter Solid) (Solid, error)
	// Release frees backend resources held by a solid.
	Release(Solid)
}

// Generator executes plans against a Backend.
type Generator struct {
	Backend Backend
	// Log receives progress and warnings. nil disables logging.
	Log *zap.Logger
}

// Result is the outcome of executing a plan.
type Result struct {
	Plan Plan
	// Solid is the shroud. After a failed subtraction it is the last good solid.
	Solid Solid
	// Applied is the number of plan cutters subtracted from Solid.
	Applied int
}

// Done reports whether every cutter in the plan was applied.
func (r *Result) Done() bool { return r.Solid != nil && r.Applied == len(r.Plan.Cutters) }

// Generate builds the base block and subtracts every cutter in plan order.
// A failing backend call aborts the run with *BooleanOperationError; the
// returned Result then holds the solid with the cutters applied so far.
func (g Generator) Generate(p Plan) (*Result, error) {
	if g.Backend == nil {
		return nil, errors.New("nil geometry backend")
	}
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("board", p.Board.Name))
	for _, w := range p.Warnings {
		log.Warn("plan warning", zap.Error(w))
	}
	res := &Result{Plan: p}
	base, err := g.Backend.CreateBox(p.Base.Center, p.Base.Size)
	if err != nil {
		return nil, fmt.Errorf("creating base block: %w", err)
	}
	res.Solid = base
	log.Debug("created base block",
		zap.Float64("length", p.Base.Size.X),
		zap.Float64("width", p.Base.Size.Y),
		zap.Float64("height", p.Base.Size.Z),
	)
	for i, c := range p.Cutters {
		next, err := g.subtract(res.Solid, c)
		if err != nil {
			log.Error("boolean difference failed", zap.String("cutter", c.Name()), zap.Int("applied", i), zap.Error(err))
			return res, &BooleanOperationError{Cutter: c, Applied: p.Cutters[:i:i], Err: err}
		}
		if next != res.Solid {
			g.Backend.Release(res.Solid)
		}
		res.Solid = next
		res.Applied = i + 1
		log.Debug("applied cutter", zap.String("cutter", c.Name()))
	}
	log.Info("shroud generated", zap.Int("cutters", res.Applied))
	return res, nil
}

// subtract creates the cutter solid, subtracts it and always releases it.
func (g Generator) subtract(base Solid, c Cutter) (Solid, error) {
	cutter, err := g.Backend.CreateBox(c.Center, c.Size)
	if err != nil {
		return nil, err
	}
	defer g.Backend.Release(cutter)
	return g.Backend.Subtract(base, cutter)
}
