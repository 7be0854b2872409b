package render

import "math"

// DepthBuffer stores the nearest depth seen at each pixel.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float64 // Row-major, +Inf where nothing has been drawn
}

// NewDepthBuffer creates a depth buffer cleared to +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to +Inf.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Depth)
	if n == 0 {
		return
	}
	d.Depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(d.Depth[i:], d.Depth[:i])
	}
}

// At returns the stored depth at (x, y), or +Inf outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.Depth[y*d.Width+x]
}

// TestAndSet stores z at (x, y) if it is strictly nearer than the stored
// value and reports whether it did. Equal depths keep the earlier fragment.
func (d *DepthBuffer) TestAndSet(x, y int, z float64) bool {
	idx := y*d.Width + x
	if z < d.Depth[idx] {
		d.Depth[idx] = z
		return true
	}
	return false
}
