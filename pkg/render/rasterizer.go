package render

import (
	"image/color"

	"github.com/taigrr/turntable/pkg/math3d"
)

// Vertex represents a view-space vertex with the attributes needed for
// shading.
type Vertex struct {
	Position math3d.Vec3 // View-space position
	Normal   math3d.Vec3 // Normal vector (for lighting)
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Stats counts rasterizer work for one frame.
type Stats struct {
	Triangles     int // Triangles submitted
	Degenerate    int // Triangles skipped for zero projected area
	Fragments     int // Pixels written
	DepthRejected int // Covered pixels that failed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Degenerate += o.Degenerate
	s.Fragments += o.Fragments
	s.DepthRejected += o.DepthRejected
}

// edge returns twice the signed area of (a, b, c). It is zero when c lies
// on the line through a and b and its sign tells which side c is on.
func edge(a, b, c Point) int64 {
	return int64(c.X-a.X)*int64(b.Y-a.Y) - int64(c.Y-a.Y)*int64(b.X-a.X)
}

// Rasterize scan-converts a projected triangle.
//
// Every integer pixel (x, y) inside the triangle's bounding box, clipped to
// the width x height grid, is tested with three integer edge functions. A
// pixel is covered when all three agree in sign (zero counts as either),
// which accepts both windings and includes pixels exactly on an edge.
// emit receives the barycentric weights of each covered pixel; they sum to
// one and weight p0, p1, p2 in X, Y, Z.
//
// Rasterize returns false without emitting anything if the triangle has
// zero area.
func Rasterize(pts [3]Point, width, height int, emit func(x, y int, w math3d.Vec3)) bool {
	p0, p1, p2 := pts[0], pts[1], pts[2]

	area := edge(p0, p1, p2)
	if area == 0 {
		return false
	}

	// Bounding box (clamped to screen)
	minX := max(0, min(p0.X, p1.X, p2.X))
	maxX := min(width-1, max(p0.X, p1.X, p2.X))
	minY := max(0, min(p0.Y, p1.Y, p2.Y))
	maxY := min(height-1, max(p0.Y, p1.Y, p2.Y))
	if minX > maxX || minY > maxY {
		return true
	}

	// edge(a, b, p) is linear in p: stepping x adds (b.Y-a.Y), stepping y
	// subtracts (b.X-a.X). Edge 0: p1 -> p2, Edge 1: p2 -> p0, Edge 2: p0 -> p1.
	dx0, dy0 := int64(p2.Y-p1.Y), -int64(p2.X-p1.X)
	dx1, dy1 := int64(p0.Y-p2.Y), -int64(p0.X-p2.X)
	dx2, dy2 := int64(p1.Y-p0.Y), -int64(p1.X-p0.X)

	start := Point{minX, minY}
	w0Row := edge(p1, p2, start)
	w1Row := edge(p2, p0, start)
	w2Row := edge(p0, p1, start)

	invArea := 1 / float64(area)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row

		for x := minX; x <= maxX; x++ {
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				emit(x, y, math3d.Vec3{
					X: float64(w0) * invArea,
					Y: float64(w1) * invArea,
					Z: float64(w2) * invArea,
				})
			}
			w0 += dx0
			w1 += dx1
			w2 += dx2
		}

		w0Row += dy0
		w1Row += dy1
		w2Row += dy2
	}

	return true
}

// Rasterizer draws view-space triangles into a framebuffer.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer
	opts  Options

	Stats Stats
}

// NewRasterizer creates a rasterizer that draws into fb with a fresh depth
// buffer of the same size.
func NewRasterizer(fb *Framebuffer, opts Options) *Rasterizer {
	return &Rasterizer{
		fb:    fb,
		depth: NewDepthBuffer(fb.Width, fb.Height),
		opts:  opts,
	}
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	return r.fb.Height
}

// Depth returns the rasterizer's depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	r.depth.Clear()
}

// DrawTriangle projects, scan-converts and shades one triangle according
// to the configured shading mode.
func (r *Rasterizer) DrawTriangle(tri Triangle) {
	r.Stats.Triangles++

	var pts [3]Point
	for i := range 3 {
		pts[i] = Project(tri.V[i].Position, r.Width(), r.Height())
	}

	if r.opts.Shading == ShadeWireframe {
		r.drawTriangleWireframe(pts)
		return
	}

	var flat color.RGBA
	if r.opts.Shading == ShadeFlat {
		flat = r.opts.Material.Diffuse.RGBA()
	}

	width := r.Width()
	v0, v1, v2 := tri.V[0], tri.V[1], tri.V[2]

	ok := Rasterize(pts, width, r.Height(), func(x, y int, w math3d.Vec3) {
		pos := v0.Position.Scale(w.X).Add(v1.Position.Scale(w.Y)).Add(v2.Position.Scale(w.Z))

		if r.opts.DepthTest && !r.depth.TestAndSet(x, y, pos.Z) {
			r.Stats.DepthRejected++
			return
		}

		c := flat
		if r.opts.Shading == ShadePhong {
			n := v0.Normal.Scale(w.X).Add(v1.Normal.Scale(w.Y)).Add(v2.Normal.Scale(w.Z))
			c = Phong(pos, n, r.opts.Material, r.opts.Light)
		}
		r.fb.Pixels[y*width+x] = c
		r.Stats.Fragments++
	})
	if !ok {
		r.Stats.Degenerate++
	}
}
