package csg

import (
	"errors"
	"fmt"

	"github.com/nathanworms/3dprints/shroud"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ shroud.Backend = (*Backend)(nil)

// Solid is a handle to an SDF3 created by a Backend.
type Solid struct {
	sdf     SDF3
	owner   *Backend
	id      int
	release bool
}

// SDF returns the solid's distance field.
func (s *Solid) SDF() SDF3 { return s.sdf }

// Bounds returns the bounding box of the solid.
func (s *Solid) Bounds() r3.Box { return s.sdf.Bounds() }

// Backend builds solids as SDF3 trees. SDF3 values are immutable so a
// failed operation can never leave a solid partially modified.
// A Backend is not safe for concurrent use.
type Backend struct {
	live   map[int]*Solid
	nextID int
}

// NewBackend returns a ready to use Backend.
func NewBackend() *Backend {
	return &Backend{live: make(map[int]*Solid)}
}

// CreateBox returns a box of size centered at center.
func (b *Backend) CreateBox(center, size r3.Vec) (shroud.Solid, error) {
	s, err := Box(size)
	if err != nil {
		return nil, err
	}
	return b.track(Translate(s, center)), nil
}

// Subtract returns a new solid of base with cutter removed.
func (b *Backend) Subtract(base, cutter shroud.Solid) (shroud.Solid, error) {
	s0, err := b.own(base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	s1, err := b.own(cutter)
	if err != nil {
		return nil, fmt.Errorf("cutter: %w", err)
	}
	if s0 == s1 {
		return nil, errors.New("cannot subtract a solid from itself")
	}
	return b.track(Difference(s0.sdf, s1.sdf)), nil
}

// Release drops the handle. Releasing twice or releasing a foreign solid is a no-op.
func (b *Backend) Release(s shroud.Solid) {
	cs, err := b.own(s)
	if err != nil {
		return
	}
	cs.release = true
	delete(b.live, cs.id)
}

// Live returns the number of solids created and not yet released.
func (b *Backend) Live() int { return len(b.live) }

func (b *Backend) track(s SDF3) *Solid {
	if b.live == nil {
		b.live = make(map[int]*Solid)
	}
	b.nextID++
	cs := &Solid{sdf: s, owner: b, id: b.nextID}
	b.live[cs.id] = cs
	return cs
}

func (b *Backend) own(s shroud.Solid) (*Solid, error) {
	cs, ok := s.(*Solid)
	switch {
	case !ok || cs == nil:
		return nil, fmt.Errorf("solid of type %T not created by csg backend", s)
	case cs.owner != b:
		return nil, errors.New("solid belongs to another backend")
	case cs.release:
		return nil, errors.New("solid already released")
	}
	return cs, nil
}
