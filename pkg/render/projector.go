package render

import (
	"math"

	"github.com/taigrr/turntable/pkg/math3d"
)

// ZEpsilon replaces a view-space depth of exactly zero before the
// perspective divide.
const ZEpsilon = 1e-5

// maxCoord bounds projected coordinates so that products of coordinate
// differences in the edge function fit in an int64.
const maxCoord = 1 << 24

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Project maps a view-space point onto a width x height pixel grid.
// The camera sits at the origin looking down +Z; the image plane spans
// [-1,1] in both axes at z=1, with screen y growing downwards.
// Points behind the camera are not clipped.
func Project(v math3d.Vec3, width, height int) Point {
	z := v.Z
	if z == 0 {
		z = ZEpsilon
	}
	xp := v.X / z
	yp := v.Y / z

	return Point{
		X: clampCoord(math.Floor((xp + 1) * float64(width) / 2)),
		Y: clampCoord(math.Floor((1 - yp) * float64(height) / 2)),
	}
}

func clampCoord(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f > maxCoord:
		return maxCoord
	case f < -maxCoord:
		return -maxCoord
	}
	return int(f)
}
