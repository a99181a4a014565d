// Package preview renders STL files to shaded PNG images.
package preview

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nathanworms/3dprints/internal/d3"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera and output image. The mesh is fit in a
// bi-unit cube centered at the origin before rendering.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the camera up direction.
	Up r3.Vec
	// Eye is the camera position.
	Eye       r3.Vec
	Near, Far float64
	// Fovy is the vertical field of view in degrees.
	Fovy          float64
	Width, Height int
	// Scale supersamples the render before downsampling for antialiasing.
	Scale int
	// Color and Background are hex colors such as "#468966".
	Color, Background string
}

// DefaultView is an isometric view from above the part.
var DefaultView = View{
	Up:         r3.Vec{Z: 1},
	Eye:        d3.Elem(2.4),
	Near:       1,
	Far:        10,
	Fovy:       30,
	Width:      768,
	Height:     432,
	Scale:      2,
	Color:      "#468966",
	Background: "#FFF8E3",
}

// Render loads an STL file and renders it with Phong shading.
func Render(stlPath string, view View) (image.Image, error) {
	if view.Width < 1 || view.Height < 1 {
		return nil, errors.New("preview image needs positive width and height")
	}
	if view.Scale < 1 {
		view.Scale = 1
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return nil, err
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*view.Scale, view.Height*view.Scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	if view.Scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// RenderPNG renders the STL file at stlPath and saves it as a PNG at pngPath.
func RenderPNG(stlPath, pngPath string, view View) error {
	img, err := Render(stlPath, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(pngPath, img)
}
