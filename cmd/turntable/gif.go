package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/turntable/pkg/output"
	"github.com/taigrr/turntable/pkg/scene"
)

func newGIFCmd() *cobra.Command {
	var (
		frames int
		fps    int
		out    string
	)
	d := scene.Default()

	cmd := &cobra.Command{
		Use:   "gif <frames-dir>",
		Short: "Assemble numbered PNG frames into an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 || fps <= 0 {
				return fmt.Errorf("%w: frames and fps must be positive", scene.ErrInvalid)
			}
			seq := &output.PNGSequence{Dir: args[0], Frames: frames}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create gif: %w", err)
			}
			defer f.Close()

			if err := output.AssembleGIF(f, seq, fps); err != nil {
				return err
			}
			logger.Info("wrote gif", "path", out, "frames", frames, "fps", fps)
			return f.Close()
		},
	}

	cmd.Flags().IntVar(&frames, "frames", d.Frames, "number of frames to read")
	cmd.Flags().IntVar(&fps, "fps", d.FPS, "playback frames per second")
	cmd.Flags().StringVarP(&out, "output", "o", "animation.gif", "output GIF path")
	return cmd
}
