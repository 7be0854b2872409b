// Package output writes rendered frames to disk: numbered PNG sequences
// and animated GIFs.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/taigrr/turntable/pkg/render"
)

// FrameName returns the file name of frame i in a sequence of frames,
// e.g. "frame_007.png". Indices are zero padded to at least three digits,
// or to the width of the last index when that is longer.
func FrameName(i, frames int) string {
	width := max(3, len(strconv.Itoa(max(frames-1, 0))))
	return fmt.Sprintf("frame_%0*d.png", width, i)
}

// WritePNG encodes fb as a PNG file at path.
func WritePNG(path string, fb *render.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// PNGSequence writes each frame to its own numbered PNG file in Dir.
type PNGSequence struct {
	Dir    string
	Frames int
}

// NewPNGSequence creates dir if needed and returns a sequence writer for
// the given number of frames.
func NewPNGSequence(dir string, frames int) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &PNGSequence{Dir: dir, Frames: frames}, nil
}

// Path returns the file path of frame i.
func (s *PNGSequence) Path(i int) string {
	return filepath.Join(s.Dir, FrameName(i, s.Frames))
}

// WriteFrame implements anim.Sink.
func (s *PNGSequence) WriteFrame(i int, fb *render.Framebuffer) error {
	return WritePNG(s.Path(i), fb)
}
