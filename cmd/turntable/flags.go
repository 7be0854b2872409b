package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/turntable/pkg/scene"
)

// sceneFlags are the flags shared by every rendering command. Flags that
// are set on the command line override the scene file.
type sceneFlags struct {
	scene      string
	primitive  string
	cells      int
	width      int
	height     int
	background string
	shading    string
	axis       string
	noDepth    bool
	fit        float64
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	d := scene.Default()
	fs := cmd.Flags()
	fs.StringVar(&f.scene, "scene", "", "JSON scene file")
	fs.StringVar(&f.primitive, "primitive", d.Primitive, "procedural mesh when no model is given (sphere, box, cylinder)")
	fs.IntVar(&f.cells, "cells", 0, "marching cubes resolution for primitives (0 = default)")
	fs.IntVar(&f.width, "width", d.Width, "image width in pixels")
	fs.IntVar(&f.height, "height", d.Height, "image height in pixels")
	fs.StringVar(&f.background, "background", d.Background, "background color (#rrggbb)")
	fs.StringVar(&f.shading, "shading", d.Shading, "shading mode (phong, flat, wireframe)")
	fs.StringVar(&f.axis, "axis", d.Axis, "rotation axis (x, y, z)")
	fs.BoolVar(&f.noDepth, "no-depth", false, "disable the depth buffer and draw faces back to front")
	fs.Float64Var(&f.fit, "fit", d.Fit, "largest extent of the model after centering")
}

// load builds the scene from the defaults, the optional scene file, the
// changed flags and the optional model argument, in that order.
func (f *sceneFlags) load(cmd *cobra.Command, args []string) (scene.Config, error) {
	cfg := scene.Default()
	if f.scene != "" {
		var err error
		if cfg, err = scene.Load(f.scene); err != nil {
			return cfg, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("primitive") {
		cfg.Primitive = f.primitive
		cfg.Model = ""
	}
	if fs.Changed("cells") {
		cfg.Cells = f.cells
	}
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Height = f.height
	}
	if fs.Changed("background") {
		cfg.Background = f.background
	}
	if fs.Changed("shading") {
		cfg.Shading = f.shading
	}
	if fs.Changed("axis") {
		cfg.Axis = f.axis
	}
	if fs.Changed("no-depth") {
		cfg.DepthTest = !f.noDepth
	}
	if fs.Changed("fit") {
		cfg.Fit = f.fit
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// animFlags are the animation settings shared by animate and play.
type animFlags struct {
	frames  int
	fps     int
	workers int
}

func (f *animFlags) register(cmd *cobra.Command) {
	d := scene.Default()
	fs := cmd.Flags()
	fs.IntVar(&f.frames, "frames", d.Frames, "frames per full rotation")
	fs.IntVar(&f.fps, "fps", d.FPS, "playback frames per second")
	fs.IntVar(&f.workers, "workers", d.Workers, "frames rendered concurrently")
}

func (f *animFlags) apply(cmd *cobra.Command, cfg *scene.Config) error {
	fs := cmd.Flags()
	if fs.Changed("frames") {
		cfg.Frames = f.frames
	}
	if fs.Changed("fps") {
		cfg.FPS = f.fps
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	return cfg.Validate()
}

func describe(cfg scene.Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return fmt.Sprintf("primitive %s", cfg.Primitive)
}
