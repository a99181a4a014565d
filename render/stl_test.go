package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathanworms/3dprints/csg"
	"github.com/nathanworms/3dprints/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLCreateWriteRead(t *testing.T) {
	box := mustBox(t, r3.Vec{X: 3, Y: 2, Z: 1}, r3.Vec{})
	hole := mustBox(t, r3.Vec{X: 1, Y: 1, Z: 2}, r3.Vec{X: 0.5})
	object := csg.Difference(box, hole)

	path := filepath.Join(t.TempDir(), "box.stl")
	r, err := NewGridRenderer(object)
	if err != nil {
		t.Fatal(err)
	}
	if err := CreateSTL(path, r); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	r, _ = NewGridRenderer(object)
	model, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.Len() != stlHeaderSize+stlTriangleSize*len(model) {
		t.Fatalf("unexpected STL size %d for %d triangles", b.Len(), len(model))
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-5
	object := csg.Difference(
		mustBox(t, r3.Vec{X: 40, Y: 28, Z: 8}, r3.Vec{Z: 4}),
		mustBox(t, r3.Vec{X: 3, Y: 3, Z: 8}, r3.Vec{X: 10, Y: 11, Z: 4}),
	)
	r, err := NewGridRenderer(object)
	if err != nil {
		t.Fatal(err)
	}
	input, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	output, err := readBinarySTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for iface, expect := range input {
		got := output[iface]
		if got.Degenerate(1e-12) {
			t.Fatalf("triangle degenerate: %+v", got)
		}
		for i := range expect {
			if !d3.EqualWithin(got[i], expect[i], tol) {
				t.Fatalf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got[i], expect[i])
			}
		}
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSTL(&b, nil); err == nil {
		t.Fatal("expected error writing empty model")
	}
	if _, err := readBinarySTL(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Fatal("expected error reading truncated header")
	}
}
