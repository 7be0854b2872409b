package render

import (
	"image/color"
	"slices"

	"github.com/taigrr/turntable/pkg/math3d"
)

// MeshRenderer is the read-only mesh view the renderer needs.
// It is declared here so that render does not import models.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// Options configures one render pass. It is passed by value and never
// mutated by the renderer.
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
	Light      Light
	Material   Material
	Shading    ShadingMode
	DepthTest  bool // false draws faces back to front instead
}

// DefaultOptions returns a 1024x1024 depth-tested Phong pass on black.
func DefaultOptions() Options {
	return Options{
		Width:      1024,
		Height:     1024,
		Background: ColorBlack,
		Light:      DefaultLight(),
		Material:   DefaultMaterial(),
		Shading:    ShadePhong,
		DepthTest:  true,
	}
}

// TransformVertices applies m to every position as a homogeneous point
// with w = 1 and returns the results in a new slice, index for index.
func TransformVertices(m math3d.Mat4, positions []math3d.Vec3) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(positions))
	for i, p := range positions {
		out[i] = m.MulVec4(math3d.Point(p)).Vec3()
	}
	return out
}

// Renderer renders whole frames. It holds no per-frame state, so one
// Renderer may be shared by concurrent RenderFrame calls.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer for the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// RenderFrame draws mesh under transform into a new framebuffer.
//
// Local-space normals are rotated with the linear part of transform and
// renormalized. Each vertex is transformed exactly once. With depth testing
// disabled, faces are drawn farthest first by their mean 1/z.
func (r *Renderer) RenderFrame(mesh MeshRenderer, transform math3d.Mat4) (*Framebuffer, Stats) {
	fb := NewFramebuffer(r.opts.Width, r.opts.Height)
	fb.Clear(r.opts.Background)

	n := mesh.VertexCount()
	positions := make([]math3d.Vec3, n)
	normals := make([]math3d.Vec3, n)
	for i := range n {
		p, nrm := mesh.GetVertex(i)
		positions[i] = p
		normals[i] = transform.MulVec3Dir(nrm).Normalize()
	}
	world := TransformVertices(transform, positions)

	order := make([]int, mesh.TriangleCount())
	for i := range order {
		order[i] = i
	}
	if !r.opts.DepthTest {
		key := make([]float64, len(order))
		for i := range order {
			f := mesh.GetFace(i)
			key[i] = (invZ(world[f[0]]) + invZ(world[f[1]]) + invZ(world[f[2]])) / 3
		}
		slices.SortStableFunc(order, func(a, b int) int {
			switch {
			case key[a] < key[b]:
				return -1
			case key[a] > key[b]:
				return 1
			}
			return 0
		})
	}

	rast := NewRasterizer(fb, r.opts)
	for _, fi := range order {
		f := mesh.GetFace(fi)
		rast.DrawTriangle(Triangle{
			V: [3]Vertex{
				{Position: world[f[0]], Normal: normals[f[0]]},
				{Position: world[f[1]], Normal: normals[f[1]]},
				{Position: world[f[2]], Normal: normals[f[2]]},
			},
		})
	}

	return fb, rast.Stats
}

func invZ(v math3d.Vec3) float64 {
	if v.Z == 0 {
		return 1 / ZEpsilon
	}
	return 1 / v.Z
}
