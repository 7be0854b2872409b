package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/turntable/pkg/math3d"
	"github.com/taigrr/turntable/pkg/output"
	"github.com/taigrr/turntable/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		sf    sceneFlags
		angle float64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render a single frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.load(cmd, args)
			if err != nil {
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
			d, err := cfg.Driver(nil)
			if err != nil {
				return err
			}

			logger.Info("loaded", "model", describe(cfg),
				"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "skipped", mesh.Skipped)

			transform := math3d.ModelTransform(angle, d.Scale, d.Translation, d.Axis)
			fb, stats := render.NewRenderer(opts).RenderFrame(mesh, transform)

			if err := output.WritePNG(out, fb); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			logger.Info("wrote frame", "path", out, "angle", angle,
				"fragments", stats.Fragments, "degenerate", stats.Degenerate)
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().Float64Var(&angle, "angle", 0, "rotation in degrees")
	cmd.Flags().StringVarP(&out, "output", "o", "frame.png", "output PNG path")
	return cmd
}
