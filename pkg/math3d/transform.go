package math3d

import (
	"fmt"
	"math"
	"strings"
)

// Axis selects the single axis a model rotates about.
type Axis int

const (
	AxisY Axis = iota // default: turntable spin
	AxisX
	AxisZ
)

// ParseAxis parses "x", "y" or "z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y", "":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisY, fmt.Errorf("unknown rotation axis %q", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "y"
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RotateAxis creates a rotation about one of the principal axes.
func RotateAxis(axis Axis, angle float64) Mat4 {
	switch axis {
	case AxisX:
		return RotateX(angle)
	case AxisZ:
		return RotateZ(angle)
	default:
		return RotateY(angle)
	}
}

// ModelTransform composes Translate · Rotate · Scale: the model is scaled
// uniformly first, then rotated by angleDeg degrees about axis, then moved by
// translation. Any angle is accepted.
func ModelTransform(angleDeg, scale float64, translation Vec3, axis Axis) Mat4 {
	return Translate(translation).
		Mul(RotateAxis(axis, Radians(angleDeg))).
		Mul(ScaleUniform(scale))
}
