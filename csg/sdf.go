// Package csg is a small signed distance function kernel for boolean
// solid geometry built out of axis aligned boxes.
package csg

import (
	"errors"
	"math"

	"github.com/nathanworms/3dprints/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// box is a 3d box centered at the origin.
type box struct {
	half r3.Vec
}

// Box returns an SDF3 for a box of the given size centered at the origin.
func Box(size r3.Vec) (SDF3, error) {
	if d3.LTEZero(size) {
		return nil, errors.New("zero or negative box dimension")
	}
	if math.IsInf(d3.Max(size), 0) || math.IsNaN(size.X+size.Y+size.Z) {
		return nil, errors.New("non-finite box dimension")
	}
	return &box{half: r3.Scale(0.5, size)}, nil
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(p), s.half)
	outside := r3.Norm(d3.MaxElem(q, r3.Vec{}))
	inside := math.Min(d3.Max(q), 0)
	return outside + inside
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return r3.Box{Min: r3.Scale(-1, s.half), Max: s.half}
}

// translate3 moves an SDF3.
type translate3 struct {
	sdf    SDF3
	offset r3.Vec
	bb     r3.Box
}

// Translate returns s moved by offset.
func Translate(s SDF3, offset r3.Vec) SDF3 {
	if t, ok := s.(*translate3); ok {
		// Collapse nested translations.
		s, offset = t.sdf, r3.Add(t.offset, offset)
	}
	bb := s.Bounds()
	return &translate3{
		sdf:    s,
		offset: offset,
		bb:     r3.Box{Min: r3.Add(bb.Min, offset), Max: r3.Add(bb.Max, offset)},
	}
}

// Evaluate returns the minimum distance to a translated SDF3.
func (s *translate3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Sub(p, s.offset))
}

// Bounds returns the bounding box of a translated SDF3.
func (s *translate3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0, s1 SDF3
}

// Difference returns the SDF3 of s0 with s1 removed.
func Difference(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference")
	}
	return &diff3{s0: s0, s1: s1}
}

// Evaluate returns the minimum distance to the difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the minuend. It is not tightened.
func (s *diff3) Bounds() r3.Box {
	return s.s0.Bounds()
}

// Planes returns, per axis, the coordinates of every box face in s.
// Coordinates are unsorted and may repeat. ok is false if s contains a
// node that is not a box, translation or difference.
func Planes(s SDF3) (planes [3][]float64, ok bool) {
	ok = appendPlanes(&planes, s, r3.Vec{})
	return planes, ok
}

func appendPlanes(dst *[3][]float64, s SDF3, offset r3.Vec) bool {
	switch s := s.(type) {
	case *box:
		lo, hi := r3.Sub(offset, s.half), r3.Add(offset, s.half)
		dst[0] = append(dst[0], lo.X, hi.X)
		dst[1] = append(dst[1], lo.Y, hi.Y)
		dst[2] = append(dst[2], lo.Z, hi.Z)
		return true
	case *translate3:
		return appendPlanes(dst, s.sdf, r3.Add(offset, s.offset))
	case *diff3:
		return appendPlanes(dst, s.s0, offset) && appendPlanes(dst, s.s1, offset)
	}
	return false
}
