// Package sdfxcsg implements the shroud geometry backend on top of
// github.com/deadsy/sdfx.
package sdfxcsg

import (
	"errors"
	"fmt"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/nathanworms/3dprints/shroud"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ shroud.Backend = (*Backend)(nil)

// Solid wraps an sdfx SDF3.
type Solid struct {
	sdf      sdf.SDF3
	owner    *Backend
	released bool
}

// SDF returns the underlying sdfx object.
func (s *Solid) SDF() sdf.SDF3 { return s.sdf }

// Bounds returns the sdfx bounding box as an r3.Box.
func (s *Solid) Bounds() r3.Box {
	bb := s.sdf.BoundingBox()
	return r3.Box{Min: fromV3(bb.Min), Max: fromV3(bb.Max)}
}

// Backend builds solids with sdfx. It is not safe for concurrent use.
type Backend struct {
	live int
}

// CreateBox returns a sharp edged sdfx box translated to center.
func (b *Backend) CreateBox(center, size r3.Vec) (shroud.Solid, error) {
	box, err := sdf.Box3D(V3(size), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx box: %w", err)
	}
	b.live++
	return &Solid{sdf: sdf.Transform3D(box, sdf.Translate3d(V3(center))), owner: b}, nil
}

// Subtract returns base with cutter removed.
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
	b.live++
	return &Solid{sdf: sdf.Difference3D(s0.sdf, s1.sdf), owner: b}, nil
}

// Release marks s as released. Foreign or already released solids are ignored.
func (b *Backend) Release(s shroud.Solid) {
	if ss, err := b.own(s); err == nil {
		ss.released = true
		b.live--
	}
}

// Live returns the number of solids not yet released.
func (b *Backend) Live() int { return b.live }

func (b *Backend) own(s shroud.Solid) (*Solid, error) {
	ss, ok := s.(*Solid)
	switch {
	case !ok || ss == nil:
		return nil, fmt.Errorf("solid of type %T not created by sdfx backend", s)
	case ss.owner != b:
		return nil, errors.New("solid belongs to another backend")
	case ss.released:
		return nil, errors.New("solid already released")
	}
	return ss, nil
}

// WriteSTL meshes s with sdfx's octree marching cubes, using cells
// along the longest bounding box side, and writes it to path.
func WriteSTL(s shroud.Solid, cells int, path string) error {
	ss, ok := s.(*Solid)
	if !ok || ss == nil {
		return fmt.Errorf("solid of type %T not created by sdfx backend", s)
	}
	if cells < 1 {
		return errors.New("need at least one mesh cell")
	}
	// sdfx only prints file errors, so the output is created here first.
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	silenceStdout(func() {
		render.ToSTL(ss.sdf, cells, path, &render.MarchingCubesOctree{})
	})
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() <= stlHeaderSize {
		return fmt.Errorf("sdfx wrote no triangles to %s", path)
	}
	return nil
}

// stlHeaderSize is the binary STL header plus triangle count.
const stlHeaderSize = 84

// silenceStdout runs f with os.Stdout discarded. sdfx prints progress there.
func silenceStdout(f func()) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		f()
		return
	}
	stdout := os.Stdout
	os.Stdout = devNull
	defer func() {
		os.Stdout = stdout
		devNull.Close()
	}()
	f()
}

// V3 converts an r3.Vec to an sdfx vector.
func V3(v r3.Vec) sdf.V3 { return sdf.V3{X: v.X, Y: v.Y, Z: v.Z} }

func fromV3(v sdf.V3) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
