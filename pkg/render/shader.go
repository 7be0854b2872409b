package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/taigrr/turntable/pkg/math3d"
)

// RGB is a linear color with channels nominally in [0, 1].
type RGB struct {
	R, G, B float64
}

// Add returns c + o.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the component-wise product.
func (c RGB) Mul(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s.
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Clamp limits every channel to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA clamps c and converts it to 8-bit channels by truncation.
func (c RGB) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Ambient is the constant ambient term added to every shaded pixel.
var Ambient = RGB{0.1, 0.1, 0.1}

// Light is a point light in view space.
type Light struct {
	Position  math3d.Vec3
	Intensity RGB
}

// Material holds the Phong reflection coefficients of a surface.
type Material struct {
	Diffuse   RGB
	Specular  RGB
	Shininess float64
}

// DefaultLight returns a white light at (0, 0, 2).
func DefaultLight() Light {
	return Light{
		Position:  math3d.V3(0, 0, 2),
		Intensity: RGB{1, 1, 1},
	}
}

// DefaultMaterial returns a glossy red material.
func DefaultMaterial() Material {
	return Material{
		Diffuse:   RGB{0.8, 0.1, 0.1},
		Specular:  RGB{1, 1, 1},
		Shininess: 32,
	}
}

// Shade evaluates the Phong reflection model at a view-space position.
//
// The camera is at the origin. The normal is flipped towards the light
// when it faces away, so both sides of a surface are lit. The result is
// not clamped.
func Shade(pos, normal math3d.Vec3, m Material, l Light) RGB {
	n := normal.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	toEye := pos.Negate().Normalize()

	nl := n.Dot(toLight)
	if nl < 0 {
		n = n.Negate()
		nl = -nl
	}

	// R = 2(N·L)N - L
	refl := toLight.Negate().Reflect(n)

	diffuse := m.Diffuse.Mul(l.Intensity).Scale(math.Max(0, nl))
	specular := m.Specular.Mul(l.Intensity).Scale(math.Pow(math.Max(0, refl.Dot(toEye)), m.Shininess))

	return Ambient.Add(diffuse).Add(specular)
}

// Phong shades a fragment and converts it to an 8-bit color.
func Phong(pos, normal math3d.Vec3, m Material, l Light) color.RGBA {
	return Shade(pos, normal, m, l).RGBA()
}

// ShadingMode selects how triangles are filled.
type ShadingMode int

const (
	// ShadePhong interpolates position and normal and lights every pixel.
	ShadePhong ShadingMode = iota
	// ShadeFlat fills triangles with the material's diffuse color.
	ShadeFlat
	// ShadeWireframe draws triangle edges only.
	ShadeWireframe
)

var shadingNames = []string{"phong", "flat", "wireframe"}

// String returns the mode's flag name.
func (s ShadingMode) String() string {
	if s < 0 || int(s) >= len(shadingNames) {
		return fmt.Sprintf("ShadingMode(%d)", int(s))
	}
	return shadingNames[s]
}

// ParseShadingMode converts a name such as "phong" to a ShadingMode.
func ParseShadingMode(s string) (ShadingMode, error) {
	for i, name := range shadingNames {
		if strings.EqualFold(s, name) {
			return ShadingMode(i), nil
		}
	}
	return ShadePhong, fmt.Errorf("unknown shading mode %q (want %s)", s, strings.Join(shadingNames, ", "))
}
