package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/session"
	"github.com/taigrr/lumen/pkg/window"
)

func newWindowCmd(o *options) *cobra.Command {
	var (
		scale int
		fps   int
		label bool
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Interactive desktop window",
		Long: "Trace the scene into a resizable desktop window.\n\n" +
			"Controls: Left/Right spin, Space kick, +/- zoom, N compositing,\n" +
			"M light markers, R reset, Esc quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := newLogger(o, false)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := loadSetup(cmd, o, logger)
			if err != nil {
				return err
			}
			sess, err := session.New(st.scene, st.camera(), st.tracer, st.target, session.WithFPS(fps))
			if err != nil {
				return err
			}

			logger.Info("opening window", "scene", st.name, "size", fmt.Sprintf("%dx%d", st.width*scale, st.height*scale))
			return window.Run(sess, window.Options{
				Title: "lumen - " + st.name,
				Scale: scale,
				FPS:   fps,
				Label: label,
				OnFrame: func(stats render.FrameStats) {
					logger.Debug("frame",
						"size", fmt.Sprintf("%dx%d", stats.Width, stats.Height),
						"hits", stats.Hits,
						"lightEvaluations", stats.LightEvaluations,
						"duration", stats.Duration,
					)
				},
			})
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 2, "window pixels per traced pixel")
	cmd.Flags().IntVar(&fps, "fps", 60, "target frames per second")
	cmd.Flags().BoolVar(&label, "label", false, "draw the compositing mode and frame time")
	return cmd
}
