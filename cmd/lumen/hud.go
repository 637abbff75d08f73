package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/session"
)

var (
	barStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	fpsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fff87"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Faint(true)
)

// HUD draws the overlay rows of the terminal viewer.
type HUD struct {
	name     string
	surfaces int
	lights   int
	Show     bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD for a scene.
func NewHUD(name string, surfaces, lights int) *HUD {
	return &HUD{
		name:     name,
		surfaces: surfaces,
		lights:   lights,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS counts a displayed frame. Call once per frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// spread lays out left and right within width, padding between them.
func spread(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// Top returns the header row.
func (h *HUD) Top(width int) string {
	left := fpsStyle.Render(fmt.Sprintf(" %.0f FPS ", h.fps)) + titleStyle.Render(h.name)
	right := countStyle.Render(fmt.Sprintf("%d surfaces %d lights ", h.surfaces, h.lights))
	return barStyle.Render(spread(width, left, right))
}

// Bottom returns the status row.
func (h *HUD) Bottom(width int, s *session.Session) string {
	stats := s.Stats()
	left := fmt.Sprintf(" %s nearest %s markers  zoom %.2f",
		check(s.Tracer().Compositing() == render.CompositeNearest), check(s.Markers()), s.Zoom())
	right := hintStyle.Render(fmt.Sprintf("%s %3.0f%% hit  ? help ", stats.Duration.Round(time.Millisecond), 100*stats.HitRatio()))
	return barStyle.Render(spread(width, left, right))
}

// Draw paints the HUD over the top and bottom rows of scr.
func (h *HUD) Draw(scr uv.Screen, width, height int, s *session.Session) {
	if !h.Show || width < 1 || height < 2 {
		return
	}
	uv.NewStyledString(h.Top(width)).Draw(scr, uv.Rect(0, 0, width, 1))
	uv.NewStyledString(h.Bottom(width, s)).Draw(scr, uv.Rect(0, height-1, width, 1))
}
