package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/turntable/pkg/output"
	"github.com/taigrr/turntable/pkg/render"
)

// previewSize is the render resolution used by play unless --width or
// --height is given. Frames are scaled to the terminal afterwards.
const previewSize = 256

func newPlayCmd() *cobra.Command {
	var (
		sf sceneFlags
		af animFlags
	)

	cmd := &cobra.Command{
		Use:   "play [model]",
		Short: "Render a rotation and play it back in the terminal",
		Long: "Renders every frame of the rotation, then loops them in the terminal.\n\n" +
			"Controls:\n" +
			"  Space  - pause / resume\n" +
			"  +/-    - faster / slower (negative plays backwards)\n" +
			"  R      - restart\n" +
			"  Q/Esc  - quit",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.load(cmd, args)
			if err != nil {
				return err
			}
			if sf.scene == "" && !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
				cfg.Width, cfg.Height = previewSize, previewSize
			}
			if err := af.apply(cmd, &cfg); err != nil {
				return err
			}

			mesh, err := cfg.Mesh()
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			opts, err := cfg.RenderOptions()
			if err != nil {
				return err
			}
			driver, err := cfg.Driver(logger)
			if err != nil {
				return err
			}

			var frames output.Collector
			if _, err := driver.Run(cmd.Context(), mesh, render.NewRenderer(opts), &frames); err != nil {
				return err
			}
			return play(cmd.Context(), frames.Frames, cfg.FPS)
		},
	}

	sf.register(cmd)
	af.register(cmd)
	return cmd
}

// spinner advances a playback position whose speed eases towards a target
// with a critically damped spring, so starts, stops and speed changes ramp
// smoothly.
type spinner struct {
	phase  float64 // frames
	speed  float64 // frames per tick
	accel  float64 // spring velocity of speed
	target float64
	spring harmonica.Spring
}

func newSpinner(fps int) *spinner {
	return &spinner{
		target: 1,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (s *spinner) step() {
	s.speed, s.accel = s.spring.Update(s.speed, s.accel, s.target)
	s.phase += s.speed
}

// frame returns the frame index for the current phase, wrapping in both
// directions.
func (s *spinner) frame(n int) int {
	i := int(math.Floor(s.phase)) % n
	if i < 0 {
		i += n
	}
	return i
}

func (s *spinner) togglePause() {
	if s.target == 0 {
		s.target = 1
	} else {
		s.target = 0
	}
}

func (s *spinner) adjust(delta float64) {
	s.target = math.Max(-4, math.Min(4, s.target+delta))
}

// viewport returns the largest square of framebuffer pixels that fits a
// cols x rows terminal with half-block rows, centered.
func viewport(cols, rows int) (side int, area image.Rectangle) {
	side = min(cols, rows*2)
	side -= side % 2
	x0 := (cols - side) / 2
	y0 := (rows - side/2) / 2
	return side, image.Rect(x0, y0, x0+side, y0+side/2)
}

func play(ctx context.Context, frames []*render.Framebuffer, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to play")
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	spin := newSpinner(fps)
	scaled := make([]*render.Framebuffer, len(frames))

	// Event handler
	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				clear(scaled)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					cancel()
				case ev.MatchString("space"):
					spin.togglePause()
				case ev.MatchString("+", "="):
					spin.adjust(0.5)
				case ev.MatchString("-", "_"):
					spin.adjust(-0.5)
				case ev.MatchString("r"):
					spin.phase = 0
				}
			}
			mu.Unlock()
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		mu.Lock()
		spin.step()
		i := spin.frame(len(frames))
		side, area := viewport(width, height)
		if side > 0 {
			if scaled[i] == nil {
				scaled[i] = frames[i].Resize(side, side)
			}
			scaled[i].Draw(term, area)
		}
		mu.Unlock()

		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
}
