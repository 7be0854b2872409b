package output

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/turntable/pkg/render"
)

// GIFWriter accumulates frames and encodes them as a looping animated GIF
// on Close.
type GIFWriter struct {
	w     io.Writer
	delay int // hundredths of a second
	anim  gif.GIF
}

// NewGIFWriter returns a writer that plays frames at fps frames per second.
// GIF delays have a resolution of 1/100 s, so fps is rounded to that grid.
func NewGIFWriter(w io.Writer, fps int) *GIFWriter {
	delay := 5
	if fps > 0 {
		delay = max(1, (100+fps/2)/fps)
	}
	return &GIFWriter{w: w, delay: delay}
}

// WriteFrame implements anim.Sink. Frames must arrive in order.
func (g *GIFWriter) WriteFrame(i int, fb *render.Framebuffer) error {
	if i != len(g.anim.Image) {
		return fmt.Errorf("gif: got frame %d, want %d", i, len(g.anim.Image))
	}
	g.add(fb.ToImage())
	return nil
}

func (g *GIFWriter) add(img image.Image) {
	b := img.Bounds()
	pal := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), img, b.Min)
	g.anim.Image = append(g.anim.Image, pal)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

// Len returns the number of frames written so far.
func (g *GIFWriter) Len() int {
	return len(g.anim.Image)
}

// Close encodes the animation. It fails if no frame was written.
func (g *GIFWriter) Close() error {
	if len(g.anim.Image) == 0 {
		return fmt.Errorf("gif: no frames")
	}
	return gif.EncodeAll(g.w, &g.anim)
}

// AssembleGIF reads the numbered PNG frames of seq in index order and
// writes them to w as an animated GIF.
func AssembleGIF(w io.Writer, seq *PNGSequence, fps int) error {
	g := NewGIFWriter(w, fps)
	for i := range seq.Frames {
		img, err := readPNG(seq.Path(i))
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		g.add(img)
	}
	return g.Close()
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
