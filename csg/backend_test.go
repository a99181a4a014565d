package csg

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBackendLifecycle(t *testing.T) {
	b := NewBackend()
	base, err := b.CreateBox(r3.Vec{Z: 5}, r3.Vec{X: 10, Y: 10, Z: 10})
	if err != nil {
		t.Fatal(err)
	}
	cutter, err := b.CreateBox(r3.Vec{Z: 5}, r3.Vec{X: 2, Y: 2, Z: 10})
	if err != nil {
		t.Fatal(err)
	}
	if b.Live() != 2 {
		t.Fatalf("got %d live solids, want 2", b.Live())
	}
	result, err := b.Subtract(base, cutter)
	if err != nil {
		t.Fatal(err)
	}
	b.Release(cutter)
	b.Release(base)
	b.Release(base) // no-op
	if b.Live() != 1 {
		t.Fatalf("got %d live solids, want 1", b.Live())
	}
	sdf := result.(*Solid).SDF()
	if sdf.Evaluate(r3.Vec{Z: 5}) < 0 {
		t.Error("hole center is inside result")
	}
	if sdf.Evaluate(r3.Vec{X: 3, Z: 5}) >= 0 {
		t.Error("wall is outside result")
	}
	if _, err := b.Subtract(result, cutter); err == nil {
		t.Error("expected error subtracting released cutter")
	}
	if _, err := b.Subtract(result, result); err == nil {
		t.Error("expected error subtracting solid from itself")
	}
}

func TestBackendForeignSolid(t *testing.T) {
	b1, b2 := NewBackend(), NewBackend()
	s1, _ := b1.CreateBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	s2, _ := b2.CreateBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	if _, err := b1.Subtract(s1, s2); err == nil {
		t.Error("expected error subtracting solid of another backend")
	}
	if _, err := b1.Subtract(s1, nil); err == nil {
		t.Error("expected error subtracting nil solid")
	}
	b1.Release(s2)
	if b2.Live() != 1 {
		t.Error("release through foreign backend freed solid")
	}
}

func TestBackendInvalidBox(t *testing.T) {
	b := NewBackend()
	if _, err := b.CreateBox(r3.Vec{}, r3.Vec{X: 1, Y: 0, Z: 1}); err == nil {
		t.Fatal("expected error for zero width box")
	}
	if b.Live() != 0 {
		t.Error("failed CreateBox left a live solid")
	}
}
