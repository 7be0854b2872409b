// Package anim drives a renderer through a full turntable rotation.
package anim

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/turntable/pkg/math3d"
	"github.com/taigrr/turntable/pkg/render"
)

// ErrNoFrames is returned by Run when the driver has no frames to render.
var ErrNoFrames = errors.New("frame count must be positive")

// Sink receives rendered frames in ascending index order.
type Sink interface {
	WriteFrame(i int, fb *render.Framebuffer) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(i int, fb *render.Framebuffer) error

// WriteFrame calls f(i, fb).
func (f SinkFunc) WriteFrame(i int, fb *render.Framebuffer) error {
	return f(i, fb)
}

// Driver renders Frames evenly spaced rotations of a mesh.
type Driver struct {
	Frames      int
	Scale       float64
	Translation math3d.Vec3
	Axis        math3d.Axis

	// Workers is the number of frames rendered concurrently. Values below
	// one render sequentially. Frames always reach the sink in order.
	Workers int

	// Logger receives one Info line per frame. Nil disables logging.
	Logger *log.Logger
}

// Angle returns the rotation of frame i in degrees: i/Frames of a full turn.
func (d *Driver) Angle(i int) float64 {
	if d.Frames <= 0 {
		return 0
	}
	return float64(i) / float64(d.Frames) * 360
}

// Transform returns the model transform of frame i.
func (d *Driver) Transform(i int) math3d.Mat4 {
	return math3d.ModelTransform(d.Angle(i), d.Scale, d.Translation, d.Axis)
}

type frame struct {
	fb    *render.Framebuffer
	stats render.Stats
}

// Run renders every frame and passes it to sink, returning the summed
// statistics. Each frame gets its own buffers; mesh and renderer are only
// read. Cancelling ctx stops rendering before the next batch.
func (d *Driver) Run(ctx context.Context, mesh render.MeshRenderer, r *render.Renderer, sink Sink) (render.Stats, error) {
	var total render.Stats
	if d.Frames <= 0 {
		return total, ErrNoFrames
	}
	workers := max(d.Workers, 1)

	batch := make([]frame, workers)
	for start := 0; start < d.Frames; start += workers {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n := min(workers, d.Frames-start)
		var g errgroup.Group
		for j := range n {
			g.Go(func() error {
				fb, stats := r.RenderFrame(mesh, d.Transform(start+j))
				batch[j] = frame{fb: fb, stats: stats}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return total, err
		}

		for j := range n {
			i := start + j
			f := batch[j]
			batch[j] = frame{}
			total.Add(f.stats)

			if d.Logger != nil {
				d.Logger.Info("rendered frame",
					"frame", i,
					"angle", d.Angle(i),
					"triangles", f.stats.Triangles,
					"fragments", f.stats.Fragments)
			}
			if err := sink.WriteFrame(i, f.fb); err != nil {
				return total, fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}

	return total, nil
}
