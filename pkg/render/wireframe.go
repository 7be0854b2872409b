package render

import "math"

// drawTriangleWireframe draws the three projected edges with Bresenham
// lines in the material's diffuse color. Lines ignore the depth buffer.
func (r *Rasterizer) drawTriangleWireframe(pts [3]Point) {
	if edge(pts[0], pts[1], pts[2]) == 0 {
		r.Stats.Degenerate++
		return
	}

	c := r.opts.Material.Diffuse.RGBA()
	for i := range 3 {
		a, b, ok := clipLine(pts[i], pts[(i+1)%3], r.fb.Width, r.fb.Height)
		if ok {
			r.fb.DrawLine(a.X, a.Y, b.X, b.Y, c)
		}
	}
}

// clipLine clips the segment ab to [0,w-1]x[0,h-1] (Liang-Barsky), so
// Bresenham only walks on-screen pixels even for clamped coordinates.
// It reports false when nothing of the segment is visible.
func clipLine(a, b Point, w, h int) (Point, Point, bool) {
	if w <= 0 || h <= 0 {
		return a, b, false
	}

	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0, float64(w-1) - x0, y0, float64(h-1) - y0}

	t0, t1 := 0.0, 1.0
	for i := range 4 {
		if p[i] == 0 {
			if q[i] < 0 {
				return a, b, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}

	at := func(t float64) Point {
		return Point{
			X: min(max(int(math.Round(x0+t*dx)), 0), w-1),
			Y: min(max(int(math.Round(y0+t*dy)), 0), h-1),
		}
	}
	return at(t0), at(t1), true
}
