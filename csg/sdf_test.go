package csg

import (
	"math"
	"sort"
	"testing"

	"github.com/nathanworms/3dprints/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxEvaluate(t *testing.T) {
	s, err := Box(r3.Vec{X: 2, Y: 4, Z: 6})
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{X: 1}, want: 0},
		{p: r3.Vec{X: 3}, want: 2},
		{p: r3.Vec{Y: -2.5}, want: 0.5},
		{p: r3.Vec{X: 4, Y: 6}, want: math.Hypot(3, 4)},
		{p: r3.Vec{Z: 2.5}, want: -0.5},
	} {
		got := s.Evaluate(test.p)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Evaluate(%v)=%g, want %g", test.p, got, test.want)
		}
	}
	want := r3.Box{Min: r3.Vec{X: -1, Y: -2, Z: -3}, Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	if !d3.BoxEqualWithin(s.Bounds(), want, 0) {
		t.Errorf("got bounds %v, want %v", s.Bounds(), want)
	}
}

func TestBoxInvalid(t *testing.T) {
	for _, size := range []r3.Vec{
		{},
		{X: 1, Y: 1},
		{X: 1, Y: -1, Z: 1},
		{X: math.Inf(1), Y: 1, Z: 1},
		{X: 1, Y: math.NaN(), Z: 1},
	} {
		if _, err := Box(size); err == nil {
			t.Errorf("expected error for size %v", size)
		}
	}
}

func TestTranslate(t *testing.T) {
	s, _ := Box(r3.Vec{X: 2, Y: 2, Z: 2})
	moved := Translate(Translate(s, r3.Vec{X: 1}), r3.Vec{Y: 2, Z: 3})
	if _, nested := moved.(*translate3).sdf.(*translate3); nested {
		t.Error("nested translation not collapsed")
	}
	center := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := moved.Evaluate(center); got != -1 {
		t.Errorf("got %g at moved center, want -1", got)
	}
	want := r3.Box{Min: r3.Vec{X: 0, Y: 1, Z: 2}, Max: r3.Vec{X: 2, Y: 3, Z: 4}}
	if !d3.BoxEqualWithin(moved.Bounds(), want, 1e-12) {
		t.Errorf("got bounds %v, want %v", moved.Bounds(), want)
	}
}

func TestDifference(t *testing.T) {
	base, _ := Box(r3.Vec{X: 10, Y: 10, Z: 10})
	cutter, _ := Box(r3.Vec{X: 2, Y: 2, Z: 20})
	s := Difference(base, cutter)
	for _, test := range []struct {
		p      r3.Vec
		inside bool
	}{
		{p: r3.Vec{}, inside: false},
		{p: r3.Vec{X: 3}, inside: true},
		{p: r3.Vec{X: 0.5, Y: 0.5, Z: 4}, inside: false},
		{p: r3.Vec{X: 6}, inside: false},
	} {
		if got := s.Evaluate(test.p) < 0; got != test.inside {
			t.Errorf("inside(%v)=%t, want %t", test.p, got, test.inside)
		}
	}
	if !d3.BoxEqualWithin(s.Bounds(), base.Bounds(), 0) {
		t.Error("difference bounds should match minuend")
	}
}

func TestPlanes(t *testing.T) {
	base, _ := Box(r3.Vec{X: 4, Y: 2, Z: 2})
	cutter, _ := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	s := Difference(Translate(base, r3.Vec{Z: 1}), Translate(cutter, r3.Vec{X: 1, Z: 1.5}))
	planes, ok := Planes(s)
	if !ok {
		t.Fatal("box tree not supported")
	}
	want := [3][]float64{
		{-2, 0.5, 1.5, 2},
		{-1, -0.5, 0.5, 1},
		{0, 1, 2, 2},
	}
	for axis := range planes {
		sort.Float64s(planes[axis])
		if len(planes[axis]) != len(want[axis]) {
			t.Fatalf("axis %d: got planes %v, want %v", axis, planes[axis], want[axis])
		}
		for i := range want[axis] {
			if math.Abs(planes[axis][i]-want[axis][i]) > 1e-12 {
				t.Errorf("axis %d: got planes %v, want %v", axis, planes[axis], want[axis])
				break
			}
		}
	}
}
