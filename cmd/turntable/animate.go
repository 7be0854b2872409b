package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/turntable/pkg/output"
	"github.com/taigrr/turntable/pkg/render"
)

func newAnimateCmd() *cobra.Command {
	var (
		sf     sceneFlags
		af     animFlags
		outDir string
		gifOut string
	)

	cmd := &cobra.Command{
		Use:   "animate [model]",
		Short: "Render a full rotation as numbered PNG frames and/or a GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" && gifOut == "" {
				return fmt.Errorf("nothing to write: set --output and/or --gif")
			}

			cfg, err := sf.load(cmd, args)
			if err != nil {
				return err
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

			logger.Info("loaded", "model", describe(cfg),
				"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "skipped", mesh.Skipped)

			var sinks output.Multi
			if outDir != "" {
				seq, err := output.NewPNGSequence(outDir, cfg.Frames)
				if err != nil {
					return err
				}
				sinks = append(sinks, seq)
			}

			var gw *output.GIFWriter
			if gifOut != "" {
				f, err := os.Create(gifOut)
				if err != nil {
					return fmt.Errorf("create gif: %w", err)
				}
				defer f.Close()
				gw = output.NewGIFWriter(f, cfg.FPS)
				sinks = append(sinks, gw)
			}

			stats, err := driver.Run(cmd.Context(), mesh, render.NewRenderer(opts), sinks)
			if err != nil {
				return err
			}

			if gw != nil {
				if err := gw.Close(); err != nil {
					return fmt.Errorf("write gif: %w", err)
				}
				logger.Info("wrote gif", "path", gifOut, "frames", gw.Len(), "fps", cfg.FPS)
			}
			logger.Info("done", "frames", cfg.Frames,
				"fragments", stats.Fragments, "depth_rejected", stats.DepthRejected, "degenerate", stats.Degenerate)
			return nil
		},
	}

	sf.register(cmd)
	af.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output", "o", "frames", "directory for frame_NNN.png files (empty to skip)")
	cmd.Flags().StringVar(&gifOut, "gif", "", "also write an animated GIF to this path")
	return cmd
}
