package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/session"
)

const viewHelp = `Controls:
  Left/Right, A/D  - Spin the lights
  Mouse drag       - Spin the lights
  Space            - Random kick
  Scroll, +/-      - Zoom
  N                - Toggle nearest/last-hit compositing
  M                - Toggle light markers
  R                - Reset view
  ?                - Toggle HUD
  Esc, Q           - Quit`

func newViewCmd(o *options) *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Interactive terminal viewer",
		Long:  "Trace the scene into the terminal using half-block characters.\n\n" + viewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := newLogger(o, true)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := loadSetup(cmd, o, logger)
			if err != nil {
				return err
			}
			if err := runView(cmd.Context(), st, fps, logger); err != nil {
				logger.Error("view failed", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	return cmd
}

const (
	keySpin   = 0.02
	dragSpin  = 0.01
	zoomStep  = 1.1
	kickScale = 0.3
)

func runView(ctx context.Context, st *setup, fps int, logger *log.Logger) error {
	if fps < 1 {
		fps = 30
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

	// Button-event mouse tracking for drags, SGR extended coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1002h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		term.Shutdown(sctx)
	}
	defer cleanup()

	// Two framebuffer rows per terminal row.
	st.width, st.height = max(1, width), max(1, height*2)
	sess, err := session.New(st.scene, st.camera(), st.tracer, st.target, session.WithFPS(fps))
	if err != nil {
		return err
	}
	hud := NewHUD(st.name, len(st.scene.Surfaces), len(st.scene.Lights))

	var (
		mouseDown  bool
		lastMouseX int
	)
	handle := func(ev uv.Event) (quit bool) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			sess.Resize(width, height*2)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "q", "ctrl+c"):
				return true
			case ev.MatchString("a", "left"):
				sess.Spin(-keySpin)
			case ev.MatchString("d", "right"):
				sess.Spin(keySpin)
			case ev.MatchString("space"):
				sess.Spin((rand.Float64() - 0.5) * kickScale)
			case ev.MatchString("+", "="):
				sess.ZoomBy(1 / zoomStep)
			case ev.MatchString("-", "_"):
				sess.ZoomBy(zoomStep)
			case ev.MatchString("n"):
				sess.ToggleCompositing()
			case ev.MatchString("m"):
				sess.ToggleMarkers()
			case ev.MatchString("r"):
				sess.Reset()
			case ev.MatchString("?", "shift+/"):
				hud.Show = !hud.Show
				sess.Invalidate()
			}

		case uv.MouseClickEvent:
			mouseDown, lastMouseX = true, ev.X
		case uv.MouseReleaseEvent:
			mouseDown = false
		case uv.MouseMotionEvent:
			if mouseDown {
				sess.Spin(float64(ev.X-lastMouseX) * dragSpin)
				lastMouseX = ev.X
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				sess.ZoomBy(1 / zoomStep)
			case uv.MouseWheelDown:
				sess.ZoomBy(zoomStep)
			}
		}
		return false
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok || handle(ev) {
				return nil
			}

		case <-ticker.C:
			if !sess.Step() {
				continue
			}
			stats, err := sess.Render()
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			logger.Debug("frame",
				"size", fmt.Sprintf("%dx%d", stats.Width, stats.Height),
				"hits", stats.Hits,
				"backFacing", stats.BackFacing,
				"culled", stats.Culled,
				"duration", stats.Duration,
			)

			sess.Framebuffer().Draw(term, term.Bounds())
			hud.UpdateFPS()
			hud.Draw(term, width, height, sess)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
