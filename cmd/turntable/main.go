// turntable - software 3D rasterizer
// Renders OBJ/GLB models (or procedural primitives) with Phong shading,
// as single frames, PNG/GIF turntable animations, or live in the terminal.
//
// Usage:
//
//	turntable render  [model] --angle 45 -o frame.png
//	turntable animate [model] --frames 60 -o frames/ --gif spin.gif
//	turntable gif     frames/ --frames 60 --fps 20 -o spin.gif
//	turntable play    [model]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "turntable",
})

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "turntable",
		Short: "Software 3D rasterizer with turntable animation",
		Long: "turntable projects a triangle mesh through a pinhole camera, fills it with\n" +
			"per-pixel Phong shading and resolves visibility with a depth buffer.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(),
		newAnimateCmd(),
		newGIFCmd(),
		newPlayCmd(),
	)
	return root
}
