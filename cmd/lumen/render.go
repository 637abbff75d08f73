package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/motion"
	"github.com/taigrr/lumen/pkg/pixel"
	"github.com/taigrr/lumen/pkg/render"
)

var (
	labelStyle = lipgloss.NewStyle().Faint(true)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fd7ff"))
)

func summary(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(labelStyle.Render(pairs[i]+" ") + valueStyle.Render(pairs[i+1]))
	}
	return b.String()
}

func newRenderCmd(o *options) *cobra.Command {
	var (
		output string
		label  bool
		angle  float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Trace one frame to a PNG",
		Args:  cobra.NoArgs,
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
			scene := st.scene
			if angle != 0 {
				scene = scene.WithLightsOrbited(scene.Centroid(), degrees(angle))
			}

			fb := render.NewFramebuffer(st.width, st.height)
			stats, err := st.tracer.Render(scene, st.camera(), fb)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if label {
				fb.DrawLabel(fmt.Sprintf("%s %dms", st.tracer.Compositing(), stats.Duration.Milliseconds()), pixel.White)
			}
			if err := fb.SavePNG(output); err != nil {
				return err
			}

			logger.Info("rendered",
				"output", output,
				"rays", stats.Rays,
				"hits", stats.Hits,
				"backFacing", stats.BackFacing,
				"culled", stats.Culled,
				"duration", stats.Duration,
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary(
				"wrote", output,
				"size", fmt.Sprintf("%dx%d", stats.Width, stats.Height),
				"hit", fmt.Sprintf("%.0f%%", 100*stats.HitRatio()),
				"time", stats.Duration.Round(time.Microsecond).String(),
			))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "lumen.png", "output PNG path")
	cmd.Flags().BoolVar(&label, "label", false, "draw the compositing mode and frame time")
	cmd.Flags().Float64Var(&angle, "angle", 0, "orbit the lights by this many degrees about the scene center")
	return cmd
}

func newExportCmd(o *options) *cobra.Command {
	var (
		output  string
		frames  int
		delay   int
		ease    bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Trace a light orbit to an animated GIF or PNG sequence",
		Long: "Orbit the lights once around the scene center and trace every step.\n" +
			"A .gif output writes one animation; any other extension writes a\n" +
			"numbered PNG per frame using the output path as prefix.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if frames < 1 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			if delay < 0 {
				return errors.New("--delay must not be negative")
			}
			logger, closeLog, err := newLogger(o, false)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := loadSetup(cmd, o, logger)
			if err != nil {
				return err
			}

			// Delay is in hundredths of a second.
			fps := 60
			if delay > 0 {
				fps = max(1, 100/delay)
			}
			angles := motion.OrbitAngles(frames, fps, ease)
			center := st.scene.Centroid()

			var pool worker.DynamicWorkerPool
			if workers > 1 {
				pool = worker.NewDynamicWorkerPool(workers, frames, time.Second)
				defer pool.Stop()
			}

			logger.Info("exporting", "frames", frames, "workers", max(workers, 1), "eased", ease)
			start := time.Now()
			fbs, stats, err := st.tracer.RenderFrames(pool, frames, func(i, _ int) (*models.Scene, *render.Camera) {
				return st.scene.WithLightsOrbited(center, angles[i]), st.camera()
			})
			if err != nil {
				return err
			}
			var hits int
			for i, s := range stats {
				hits += s.Hits
				logger.Debug("frame", "index", i, "angle", angles[i], "hits", s.Hits, "duration", s.Duration)
			}

			var written string
			if strings.EqualFold(filepath.Ext(output), ".gif") {
				if err := render.SaveGIF(output, fbs, delay); err != nil {
					return err
				}
				written = output
			} else {
				prefix := strings.TrimSuffix(output, filepath.Ext(output))
				paths, err := render.SavePNGSequence(prefix, fbs)
				if err != nil {
					return err
				}
				written = fmt.Sprintf("%s .. %s", paths[0], paths[len(paths)-1])
			}

			elapsed := time.Since(start)
			logger.Info("exported", "output", written, "hits", hits, "elapsed", elapsed)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary(
				"wrote", written,
				"frames", fmt.Sprint(len(fbs)),
				"time", elapsed.Round(time.Millisecond).String(),
			))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "orbit.gif", "output .gif, or a prefix for a PNG sequence")
	cmd.Flags().IntVar(&frames, "frames", 36, "number of frames in one orbit")
	cmd.Flags().IntVar(&delay, "delay", 5, "GIF frame delay in hundredths of a second")
	cmd.Flags().BoolVar(&ease, "ease", false, "ease the orbit with a damped spring instead of constant speed")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "frames traced in parallel")
	return cmd
}
