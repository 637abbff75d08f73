package render

import (
	"image/color"

	"github.com/taigrr/lumen/pkg/pixel"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// labelFont is the bitmap font used for on-image labels.
var labelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// LabelHeight is the line height of label text in pixels.
const LabelHeight = 10

// fbDisplay adapts a Framebuffer to the drivers.Displayer interface tinyfont
// draws through.
type fbDisplay struct {
	fb *Framebuffer
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width), int16(d.fb.Height)
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.SetPixel(int(x), int(y), pixel.RGBA(c.R, c.G, c.B, c.A))
}

func (d fbDisplay) Display() error { return nil }

// DrawText writes s with its top-left corner at (x, y).
func (fb *Framebuffer) DrawText(x, y int, s string, c pixel.Color) {
	tinyfont.WriteLine(fbDisplay{fb: fb}, labelFont, int16(x), int16(y+LabelHeight-2), s,
		color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
}

// TextWidth returns the width in pixels of s in the label font.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(labelFont, s)
	return int(outbox)
}

// DrawLabel writes s in the bottom-left corner over a dark backing strip.
func (fb *Framebuffer) DrawLabel(s string, fg pixel.Color) {
	if s == "" {
		return
	}
	y := fb.Height - LabelHeight - 2
	fb.DrawRect(0, y, TextWidth(s)+4, LabelHeight+2, pixel.Black)
	fb.DrawText(2, y+1, s, fg)
}
