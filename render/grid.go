package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/nathanworms/3dprints/csg"
	"github.com/nathanworms/3dprints/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxGridCells bounds the memory used for cell classification.
const maxGridCells = 1 << 26

// GridRenderer meshes SDF3s built from axis aligned boxes exactly.
// Space inside the bounding box is split into cells by every box face
// plane so each cell is either fully inside or fully outside the solid.
// The cell center is sampled to classify it and a pair of triangles is
// emitted for every cell face between an inside and an outside cell.
type GridRenderer struct {
	planes    [3][]float64
	n         [3]int
	inside    []bool
	next      int // next cell to mesh
	unwritten triangle3Buffer
}

// NewGridRenderer classifies the cells of s. It fails if s contains
// primitives other than boxes, or if the cell grid is too large.
func NewGridRenderer(s csg.SDF3) (*GridRenderer, error) {
	planes, ok := csg.Planes(s)
	if !ok {
		return nil, errors.New("grid rendering only supports box, translation and difference nodes")
	}
	bb := s.Bounds()
	size := d3.Size(bb)
	if d3.LTEZero(size) {
		return nil, errors.New("empty solid bounds")
	}
	g := &GridRenderer{}
	total := 1
	for axis := 0; axis < 3; axis++ {
		lo, hi := d3.Comp(bb.Min, axis), d3.Comp(bb.Max, axis)
		g.planes[axis] = mergePlanes(planes[axis], lo, hi, 1e-9*math.Max(1, hi-lo))
		g.n[axis] = len(g.planes[axis]) - 1
		if g.n[axis] < 1 {
			return nil, fmt.Errorf("no cells along axis %d", axis)
		}
		total *= g.n[axis]
		if total > maxGridCells {
			return nil, fmt.Errorf("grid exceeds %d cells", maxGridCells)
		}
	}
	g.inside = make([]bool, total)
	for k := 0; k < g.n[2]; k++ {
		for j := 0; j < g.n[1]; j++ {
			for i := 0; i < g.n[0]; i++ {
				center := r3.Vec{
					X: 0.5 * (g.planes[0][i] + g.planes[0][i+1]),
					Y: 0.5 * (g.planes[1][j] + g.planes[1][j+1]),
					Z: 0.5 * (g.planes[2][k] + g.planes[2][k+1]),
				}
				g.inside[g.index(i, j, k)] = s.Evaluate(center) < 0
			}
		}
	}
	return g, nil
}

// mergePlanes sorts coordinates, drops those outside [lo, hi] and merges
// coordinates closer than tol so no sliver cells are created.
func mergePlanes(coords []float64, lo, hi, tol float64) []float64 {
	c := make([]float64, 0, len(coords)+2)
	c = append(c, lo, hi)
	for _, v := range coords {
		if v > lo+tol && v < hi-tol {
			c = append(c, v)
		}
	}
	sort.Float64s(c)
	merged := c[:1]
	for _, v := range c[1:] {
		if v-merged[len(merged)-1] > tol {
			merged = append(merged, v)
		}
	}
	// Make sure the last plane is exactly hi after merging.
	merged[len(merged)-1] = hi
	return merged
}

// Cells returns the number of cells along each axis.
func (g *GridRenderer) Cells() [3]int { return g.n }

// ReadTriangles writes the mesh triangles into dst. It returns io.EOF
// once every cell has been meshed.
func (g *GridRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	n = g.unwritten.Read(dst)
	var tmp [12]Triangle3
	for n < len(dst) && g.next < len(g.inside) {
		nt := g.cellTriangles(tmp[:], g.next)
		g.next++
		copied := copy(dst[n:], tmp[:nt])
		n += copied
		if copied < nt {
			g.unwritten.Write(tmp[copied:nt])
		}
	}
	if g.next == len(g.inside) && g.unwritten.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (g *GridRenderer) index(i, j, k int) int {
	return i + g.n[0]*(j+g.n[1]*k)
}

func (g *GridRenderer) insideAt(c [3]int) bool {
	for axis, v := range c {
		if v < 0 || v >= g.n[axis] {
			return false
		}
	}
	return g.inside[g.index(c[0], c[1], c[2])]
}

// cellTriangles writes the boundary faces of cell idx to dst, which must
// have room for 12 triangles.
func (g *GridRenderer) cellTriangles(dst []Triangle3, idx int) (nt int) {
	if !g.inside[idx] {
		return 0
	}
	cell := [3]int{idx % g.n[0], (idx / g.n[0]) % g.n[1], idx / (g.n[0] * g.n[1])}
	var lo, hi [3]float64
	for axis := range cell {
		lo[axis] = g.planes[axis][cell[axis]]
		hi[axis] = g.planes[axis][cell[axis]+1]
	}
	for axis := 0; axis < 3; axis++ {
		for _, dir := range [2]int{-1, 1} {
			neighbor := cell
			neighbor[axis] += dir
			if g.insideAt(neighbor) {
				continue
			}
			nt += face(dst[nt:], axis, dir, lo, hi)
		}
	}
	return nt
}

// face writes the two triangles of the cell face normal to axis on the
// dir side, wound so the normal points out of the cell.
func face(dst []Triangle3, axis, dir int, lo, hi [3]float64) int {
	// u, v complete a right handed basis with axis.
	u, v := (axis+1)%3, (axis+2)%3
	c := lo[axis]
	if dir > 0 {
		c = hi[axis]
	}
	vertex := func(pu, pv float64) r3.Vec {
		var comps [3]float64
		comps[axis], comps[u], comps[v] = c, pu, pv
		return d3.FromComps(comps)
	}
	p0 := vertex(lo[u], lo[v])
	p1 := vertex(hi[u], lo[v])
	p2 := vertex(hi[u], hi[v])
	p3 := vertex(lo[u], hi[v])
	if dir < 0 {
		p1, p3 = p3, p1
	}
	dst[0] = Triangle3{p0, p1, p2}
	dst[1] = Triangle3{p0, p2, p3}
	return 2
}
