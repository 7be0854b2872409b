package output

import (
	"errors"

	"github.com/taigrr/turntable/pkg/render"
)

// Collector keeps every frame in memory, indexed by frame number.
type Collector struct {
	Frames []*render.Framebuffer
}

// WriteFrame implements anim.Sink.
func (c *Collector) WriteFrame(i int, fb *render.Framebuffer) error {
	for len(c.Frames) <= i {
		c.Frames = append(c.Frames, nil)
	}
	c.Frames[i] = fb
	return nil
}

// Sink is the frame consumer interface shared with anim.Sink.
type Sink interface {
	WriteFrame(i int, fb *render.Framebuffer) error
}

// Multi fans each frame out to several sinks in order and joins their
// errors.
type Multi []Sink

// WriteFrame implements anim.Sink.
func (m Multi) WriteFrame(i int, fb *render.Framebuffer) error {
	var errs []error
	for _, s := range m {
		if err := s.WriteFrame(i, fb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
