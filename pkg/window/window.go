//go:build !tinygo

// Package window shows a session in a resizable desktop window.
//
// Controls:
//
//	Left/Right  - Spin the lights
//	Space       - Kick the lights around
//	+/-         - Zoom
//	N           - Toggle nearest/last-hit compositing
//	M           - Toggle light markers
//	R           - Reset view
//	Esc         - Quit
package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/lumen/pkg/pixel"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/session"
)

const (
	spinStep  = 0.004
	spinKick  = 0.15
	zoomStep  = 1.1
	defaultHz = 60
)

// Options configures the window.
type Options struct {
	Title string
	// Scale is the number of window pixels per traced pixel.
	Scale int
	// FPS is the update rate; it should match the session's.
	FPS int
	// Label draws the compositing mode and frame time in a corner.
	Label bool
	// OnFrame is called after every traced frame.
	OnFrame func(render.FrameStats)
}

type game struct {
	s       *session.Session
	opts    Options
	img     *ebiten.Image
	scratch []byte
	err     error
}

// Run opens the window and blocks until it is closed. The session's
// framebuffer size sets the initial window size.
func Run(s *session.Session, opts Options) error {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.FPS < 1 {
		opts.FPS = defaultHz
	}
	if opts.Title == "" {
		opts.Title = "lumen"
	}

	g := &game{s: s, opts: opts}
	fb := s.Framebuffer()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(fb.Width*opts.Scale, fb.Height*opts.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	s := g.s
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.Spin(-spinStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.Spin(spinStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Spin(spinKick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		s.ZoomBy(1 / zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		s.ZoomBy(zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.ToggleCompositing()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleMarkers()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset()
	}
	s.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.s
	if s.Dirty() {
		stats, err := s.Render()
		if err != nil {
			// Draw cannot fail; the next Update reports it.
			g.err = err
			return
		}
		if g.opts.Label {
			s.Framebuffer().DrawLabel(fmt.Sprintf("%s %dms", s.Tracer().Compositing(), stats.Duration.Milliseconds()), pixel.White)
		}
		if g.opts.OnFrame != nil {
			g.opts.OnFrame(stats)
		}
	}

	fb := s.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.scratch = fb.RGBABytes(g.scratch)
	g.img.WritePixels(g.scratch)
	screen.DrawImage(g.img, nil)
}

// Layout traces at window size divided by the scale. A new size resizes the
// camera and framebuffer and requests a redraw.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(1, outsideWidth/g.opts.Scale)
	h := max(1, outsideHeight/g.opts.Scale)
	g.s.Resize(w, h)
	return w, h
}
