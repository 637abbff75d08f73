package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/pixel"
)

// Wireframe draws projected scene guides (light markers, axes) over a
// rendered frame.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe overlay drawing into fb. The camera must
// have fb's dimensions.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line between two world points. Lines with both ends
// off screen are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, c pixel.Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2)
	if !vis1 || !vis2 {
		return
	}
	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), c)
}

// DrawAxes draws the world axes from origin.
func (w *Wireframe) DrawAxes(origin math3d.Vec3, length float64) {
	w.DrawLine3D(origin, origin.Add(math3d.V3(length, 0, 0)), pixel.Red)
	w.DrawLine3D(origin, origin.Add(math3d.V3(0, length, 0)), pixel.Green)
	w.DrawLine3D(origin, origin.Add(math3d.V3(0, 0, length)), pixel.Blue)
}

// DrawPoint draws a world point as a small 3D cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, c pixel.Color) {
	h := size / 2
	w.DrawLine3D(pos.Add(math3d.V3(-h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), c)
	w.DrawLine3D(pos.Add(math3d.V3(0, -h, 0)), pos.Add(math3d.V3(0, h, 0)), c)
	w.DrawLine3D(pos.Add(math3d.V3(0, 0, -h)), pos.Add(math3d.V3(0, 0, h)), c)
}

// DrawLights marks each visible light with an outlined square in its
// inverted color. It returns how many lights were on screen.
func (w *Wireframe) DrawLights(lights []models.Light, box int) int {
	drawn := 0
	for _, l := range lights {
		x, y, _, ok := w.camera.WorldToScreen(l.Position)
		if !ok {
			continue
		}
		c := l.Color.Invert()
		c.A = 0xff
		w.fb.DrawRectOutline(int(x)-box/2, int(y)-box/2, box, box, c)
		w.DrawPoint(l.Position, 0.2, c)
		drawn++
	}
	return drawn
}
