// Package scene holds the user-facing configuration of a render: output
// size, model placement, light, material and animation settings.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/turntable/pkg/anim"
	"github.com/taigrr/turntable/pkg/math3d"
	"github.com/taigrr/turntable/pkg/models"
	"github.com/taigrr/turntable/pkg/render"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid scene")

// LightConfig is a point light in view space.
type LightConfig struct {
	Position  [3]float64 `json:"position"`
	Intensity [3]float64 `json:"intensity"`
}

// MaterialConfig holds Phong coefficients.
type MaterialConfig struct {
	Diffuse   [3]float64 `json:"diffuse"`
	Specular  [3]float64 `json:"specular"`
	Shininess float64    `json:"shininess"`
}

// Config describes a scene. The zero value is not usable; start from
// Default.
type Config struct {
	// Model is a mesh file path (.obj, .glb, .gltf). Primitive is used
	// when Model is empty.
	Model     string `json:"model,omitempty"`
	Primitive string `json:"primitive,omitempty"`
	Cells     int    `json:"cells,omitempty"`

	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Shading    string `json:"shading"`
	DepthTest  bool   `json:"depth_test"`

	// Fit is the largest extent of the mesh after centering.
	Fit         float64    `json:"fit"`
	Scale       float64    `json:"scale"`
	Translation [3]float64 `json:"translation"`
	Axis        string     `json:"axis"`

	Frames  int `json:"frames"`
	FPS     int `json:"fps"`
	Workers int `json:"workers"`

	Light    LightConfig    `json:"light"`
	Material MaterialConfig `json:"material"`
}

// Default returns the standard turntable scene: a 1024x1024 Phong render of
// a red sphere spinning about Y in 60 frames at 20 fps.
func Default() Config {
	return Config{
		Primitive:   "sphere",
		Width:       1024,
		Height:      1024,
		Background:  "#000000",
		Shading:     "phong",
		DepthTest:   true,
		Fit:         2.5,
		Scale:       1,
		Translation: [3]float64{0, 0, 2.5},
		Axis:        "y",
		Frames:      60,
		FPS:         20,
		Workers:     1,
		Light: LightConfig{
			Position:  [3]float64{0, 0, 2},
			Intensity: [3]float64{1, 1, 1},
		},
		Material: MaterialConfig{
			Diffuse:   [3]float64{0.8, 0.1, 0.1},
			Specular:  [3]float64{1, 1, 1},
			Shininess: 32,
		},
	}
}

// Load reads a JSON scene file. Fields missing from the file keep their
// Default values. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scene: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every field and returns an error wrapping ErrInvalid for
// the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return invalid("size %dx%d must be positive", c.Width, c.Height)
	case c.Frames <= 0:
		return invalid("frames %d must be positive", c.Frames)
	case c.FPS <= 0:
		return invalid("fps %d must be positive", c.FPS)
	case c.Workers < 0:
		return invalid("workers %d must not be negative", c.Workers)
	case c.Fit <= 0:
		return invalid("fit %v must be positive", c.Fit)
	case c.Scale == 0:
		return invalid("scale must not be zero")
	case c.Material.Shininess <= 0:
		return invalid("shininess %v must be positive", c.Material.Shininess)
	case c.Cells < 0:
		return invalid("cells %d must not be negative", c.Cells)
	case c.Model == "" && c.Primitive == "":
		return invalid("no model or primitive")
	}

	channels := []struct {
		name string
		v    [3]float64
	}{
		{"light intensity", c.Light.Intensity},
		{"material diffuse", c.Material.Diffuse},
		{"material specular", c.Material.Specular},
	}
	for _, ch := range channels {
		if ch.v[0] < 0 || ch.v[1] < 0 || ch.v[2] < 0 {
			return invalid("%s %v has a negative channel", ch.name, ch.v)
		}
	}

	if _, err := math3d.ParseAxis(c.Axis); err != nil {
		return invalid("%v", err)
	}
	if _, err := render.ParseShadingMode(c.Shading); err != nil {
		return invalid("%v", err)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color into an opaque RGBA.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("background %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

func rgb(v [3]float64) render.RGB {
	return render.RGB{R: v[0], G: v[1], B: v[2]}
}

// RenderOptions converts the scene to renderer options.
func (c Config) RenderOptions() (render.Options, error) {
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	shading, _ := render.ParseShadingMode(c.Shading)
	bg, _ := ParseColor(c.Background)

	return render.Options{
		Width:      c.Width,
		Height:     c.Height,
		Background: bg,
		Light: render.Light{
			Position:  vec(c.Light.Position),
			Intensity: rgb(c.Light.Intensity),
		},
		Material: render.Material{
			Diffuse:   rgb(c.Material.Diffuse),
			Specular:  rgb(c.Material.Specular),
			Shininess: c.Material.Shininess,
		},
		Shading:   shading,
		DepthTest: c.DepthTest,
	}, nil
}

// Driver returns an animation driver for the scene.
func (c Config) Driver(logger *log.Logger) (*anim.Driver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	axis, _ := math3d.ParseAxis(c.Axis)

	return &anim.Driver{
		Frames:      c.Frames,
		Scale:       c.Scale,
		Translation: vec(c.Translation),
		Axis:        axis,
		Workers:     c.Workers,
		Logger:      logger,
	}, nil
}

// Mesh loads the scene's model (or builds its primitive), fits it to the
// configured extent around the origin and estimates vertex normals in that
// local space.
func (c Config) Mesh() (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	if c.Model != "" {
		mesh, err = models.Load(c.Model)
	} else {
		mesh, err = models.Primitive(c.Primitive, c.Cells)
	}
	if err != nil {
		return nil, err
	}

	mesh.Fit(c.Fit)
	mesh.CalculateSmoothNormals()
	return mesh, nil
}
