package render

import (
	"math"
	"testing"

	"github.com/taigrr/turntable/pkg/math3d"
)

func TestEdge(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	tests := []struct {
		name string
		c    Point
		want int64
	}{
		{"on line", Point{5, 0}, 0},
		{"below", Point{5, 3}, -30},
		{"above", Point{5, -3}, 30},
		{"extended line", Point{-4, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := edge(a, b, tc.c); got != tc.want {
				t.Errorf("edge(%v, %v, %v) = %d, want %d", a, b, tc.c, got, tc.want)
			}
		})
	}
}

func TestEdgeNoOverflow(t *testing.T) {
	a := Point{-maxCoord, -maxCoord}
	b := Point{maxCoord, maxCoord}
	c := Point{maxCoord, -maxCoord}
	// (2^25)*(2^25) twice, well inside int64
	want := int64(2*maxCoord) * int64(2*maxCoord)
	if got := edge(a, b, c); got != want {
		t.Errorf("edge = %d, want %d", got, want)
	}
}

// collect runs Rasterize and records every emitted pixel.
func collect(pts [3]Point, w, h int) (map[Point]math3d.Vec3, bool) {
	out := make(map[Point]math3d.Vec3)
	ok := Rasterize(pts, w, h, func(x, y int, bc math3d.Vec3) {
		out[Point{x, y}] = bc
	})
	return out, ok
}

func TestRasterizeWeights(t *testing.T) {
	pts := [3]Point{{2, 2}, {30, 5}, {10, 28}}
	pixels, ok := collect(pts, 40, 40)
	if !ok {
		t.Fatal("triangle reported degenerate")
	}
	if len(pixels) == 0 {
		t.Fatal("no pixels emitted")
	}

	for p, bc := range pixels {
		if sum := bc.X + bc.Y + bc.Z; math.Abs(sum-1) > 1e-9 {
			t.Fatalf("pixel %v: weights %+v sum to %v", p, bc, sum)
		}
		if bc.X < -1e-12 || bc.Y < -1e-12 || bc.Z < -1e-12 {
			t.Fatalf("pixel %v: negative weight %+v", p, bc)
		}
	}

	// Vertices lie on two edges and get the full weight.
	for i, want := range []math3d.Vec3{{X: 1}, {Y: 1}, {Z: 1}} {
		bc, ok := pixels[pts[i]]
		if !ok {
			t.Errorf("vertex %d not covered", i)
			continue
		}
		if bc.Sub(want).Len() > 1e-12 {
			t.Errorf("vertex %d weights = %+v, want %+v", i, bc, want)
		}
	}
}

func TestRasterizeWindingIndependent(t *testing.T) {
	cw := [3]Point{{3, 4}, {25, 9}, {12, 30}}
	ccw := [3]Point{cw[0], cw[2], cw[1]}

	a, _ := collect(cw, 40, 40)
	b, _ := collect(ccw, 40, 40)

	if len(a) != len(b) {
		t.Fatalf("coverage differs: %d vs %d pixels", len(a), len(b))
	}
	for p, wa := range a {
		wb, ok := b[p]
		if !ok {
			t.Fatalf("pixel %v only covered by one winding", p)
		}
		// Swapping p1 and p2 swaps their weights.
		if math.Abs(wa.X-wb.X) > 1e-12 || math.Abs(wa.Y-wb.Z) > 1e-12 || math.Abs(wa.Z-wb.Y) > 1e-12 {
			t.Fatalf("pixel %v: weights %+v vs %+v", p, wa, wb)
		}
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  [3]Point
	}{
		{"collinear", [3]Point{{0, 0}, {5, 5}, {10, 10}}},
		{"repeated point", [3]Point{{3, 3}, {3, 3}, {9, 1}}},
		{"single point", [3]Point{{4, 4}, {4, 4}, {4, 4}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pixels, ok := collect(tc.pts, 20, 20)
			if ok {
				t.Error("expected degenerate")
			}
			if len(pixels) != 0 {
				t.Errorf("emitted %d pixels", len(pixels))
			}
		})
	}
}

func TestRasterizeClipsToScreen(t *testing.T) {
	pts := [3]Point{{-50, -50}, {80, -10}, {-10, 90}}
	pixels, ok := collect(pts, 32, 24)
	if !ok {
		t.Fatal("triangle reported degenerate")
	}
	if len(pixels) == 0 {
		t.Fatal("no pixels emitted")
	}
	for p := range pixels {
		if p.X < 0 || p.X >= 32 || p.Y < 0 || p.Y >= 24 {
			t.Fatalf("pixel %v outside 32x24", p)
		}
	}
	// The screen's top-left corner is inside the triangle.
	if _, ok := pixels[Point{0, 0}]; !ok {
		t.Error("pixel (0,0) not covered")
	}
}

func TestRasterizeOffScreen(t *testing.T) {
	pts := [3]Point{{100, 100}, {120, 100}, {110, 130}}
	pixels, ok := collect(pts, 50, 50)
	if !ok {
		t.Error("off-screen triangle reported degenerate")
	}
	if len(pixels) != 0 {
		t.Errorf("emitted %d pixels", len(pixels))
	}
}

func TestRasterizeMatchesDirectEvaluation(t *testing.T) {
	// Incremental stepping must agree with evaluating each edge directly.
	pts := [3]Point{{1, 17}, {23, 2}, {29, 26}}
	pixels, _ := collect(pts, 32, 32)
	area := float64(edge(pts[0], pts[1], pts[2]))

	for y := range 32 {
		for x := range 32 {
			p := Point{x, y}
			w0, w1, w2 := edge(pts[1], pts[2], p), edge(pts[2], pts[0], p), edge(pts[0], pts[1], p)
			inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)

			bc, got := pixels[p]
			if got != inside {
				t.Fatalf("pixel %v: covered = %v, want %v", p, got, inside)
			}
			if got && math.Abs(bc.X-float64(w0)/area) > 1e-12 {
				t.Fatalf("pixel %v: w0 = %v, want %v", p, bc.X, float64(w0)/area)
			}
		}
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(4, 3)
	if !math.IsInf(d.At(2, 1), 1) {
		t.Fatalf("initial depth = %v, want +Inf", d.At(2, 1))
	}

	if !d.TestAndSet(2, 1, 5) {
		t.Error("first write rejected")
	}
	if d.TestAndSet(2, 1, 5) {
		t.Error("equal depth accepted")
	}
	if d.TestAndSet(2, 1, 7) {
		t.Error("farther depth accepted")
	}
	if !d.TestAndSet(2, 1, 3) {
		t.Error("nearer depth rejected")
	}
	if got := d.At(2, 1); got != 3 {
		t.Errorf("depth = %v, want 3", got)
	}
	if !math.IsInf(d.At(-1, 0), 1) || !math.IsInf(d.At(4, 0), 1) {
		t.Error("out of bounds depth should be +Inf")
	}

	d.Clear()
	for i, z := range d.Depth {
		if !math.IsInf(z, 1) {
			t.Fatalf("depth[%d] = %v after Clear", i, z)
		}
	}
}

func TestNewBuffersNonPositive(t *testing.T) {
	fb := NewFramebuffer(-3, 10)
	if fb.Width != 0 || len(fb.Pixels) != 0 {
		t.Errorf("framebuffer = %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	d := NewDepthBuffer(10, 0)
	if len(d.Depth) != 0 {
		t.Errorf("depth buffer has %d entries", len(d.Depth))
	}
}

func BenchmarkRasterize(b *testing.B) {
	pts := [3]Point{{10, 10}, {500, 40}, {200, 480}}
	emit := func(x, y int, w math3d.Vec3) {}

	for b.Loop() {
		Rasterize(pts, 512, 512, emit)
	}
}
