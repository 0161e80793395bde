package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/shicaiyuan/brep/internal/d3"
	"github.com/shicaiyuan/brep/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta a normalized imgDelta parameter to describe how close the matching
// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
const imgDelta = 0

type viewConfig struct {
	// what position (point) to look at
	lookat r3.Vec
	// which way is up (direction)
	up r3.Vec
	// where the camera/eye located at (point)
	eyepos r3.Vec
	far    float64
	near   float64
}

var defaultView = viewConfig{
	up:     r3.Vec{Z: 1},
	eyepos: d3.Elem(3),
	near:   1,
	far:    10,
}

func TestShellSTLRendersDeterministically(t *testing.T) {
	dir := t.TempDir()
	stlPath := filepath.Join(dir, "cube.stl")
	if err := render.CreateSTL(stlPath, render.NewShellRenderer(cubeShell(t, 1))); err != nil {
		t.Fatal(err)
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 12 {
		t.Fatalf("fauxgl loaded %d triangles", len(mesh.Triangles))
	}
	png1 := filepath.Join(dir, "cube1.png")
	png2 := filepath.Join(dir, "cube2.png")
	stlToPNG(t, stlPath, png1, defaultView)
	stlToPNG(t, stlPath, png2, defaultView)
	if !equalImages(t, png1, png2) {
		t.Error("rendering the same shell twice gave different images")
	}
}

func stlToPNG(t testing.TB, stlName, outputname string, view viewConfig) {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		t.Fatal(err)
	}
	const (
		width, height = 320, 240 // output width and height in pixels
		scale         = 2        // supersampling
		fovy          = 30       // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(view.eyepos.X, view.eyepos.Y, view.eyepos.Z)
		center = fauxgl.V(view.lookat.X, view.lookat.Y, view.lookat.Z)
		up     = fauxgl.V(view.up.X, view.up.Y, view.up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.near, view.far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := resize.Resize(width, height, context.Image(), resize.Bilinear)
	if err := fauxgl.SavePNG(outputname, image); err != nil {
		t.Fatal(err)
	}
}

func equalImages(t *testing.T, png1, png2 string) bool {
	b1, err := os.ReadFile(png1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(png2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
