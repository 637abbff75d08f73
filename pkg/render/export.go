package render

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/taigrr/lumen/pkg/models"
)

// FrameSetup returns the scene and camera for frame i of n. It is called
// from worker goroutines, so it must not share a mutable Camera between
// frames. Scenes may be shared since rendering only reads them.
type FrameSetup func(i, n int) (*models.Scene, *Camera)

// RenderFrames renders n frames, one pool task per frame, and returns them
// in frame order. A nil pool renders serially on the calling goroutine.
// The first error encountered is returned along with whatever frames
// finished.
func (t *Tracer) RenderFrames(pool worker.DynamicWorkerPool, n int, setup FrameSetup) ([]*Framebuffer, []FrameStats, error) {
	if n <= 0 {
		return nil, nil, nil
	}
	if setup == nil {
		return nil, nil, errors.New("render frames: nil setup")
	}

	frames := make([]*Framebuffer, n)
	stats := make([]FrameStats, n)
	errs := make([]error, n)

	one := func(i int) {
		scene, cam := setup(i, n)
		if cam == nil {
			errs[i] = fmt.Errorf("frame %d: nil camera", i)
			return
		}
		fb := NewFramebuffer(cam.Width(), cam.Height())
		st, err := t.Render(scene, cam, fb)
		if err != nil {
			errs[i] = fmt.Errorf("frame %d: %w", i, err)
			return
		}
		frames[i], stats[i] = fb, st
	}

	if pool == nil {
		for i := range n {
			one(i)
		}
	} else {
		// pool.Wait blocks until workers idle out, so each batch gets its
		// own barrier.
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			pool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					one(i)
					return nil, errs[i]
				},
			})
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return frames, stats, err
		}
	}
	return frames, stats, nil
}

// paletted quantizes a frame to the Plan9 palette with Floyd-Steinberg
// dithering.
func (fb *Framebuffer) paletted() *image.Paletted {
	src := fb.ToImage()
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	return dst
}

// EncodeGIF writes frames as a looping animated GIF. delay is in 100ths of
// a second per frame.
func EncodeGIF(w io.Writer, frames []*Framebuffer, delay int) error {
	if len(frames) == 0 {
		return errors.New("encode gif: no frames")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for i, fb := range frames {
		if fb == nil {
			return fmt.Errorf("encode gif: frame %d is nil", i)
		}
		out.Image = append(out.Image, fb.paletted())
		out.Delay = append(out.Delay, delay)
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// SaveGIF writes frames to path as an animated GIF.
func SaveGIF(path string, frames []*Framebuffer, delay int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := EncodeGIF(f, frames, delay); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SequenceName returns the file name of frame i in a sequence of n frames,
// zero padded so the names sort in frame order.
func SequenceName(prefix string, i, n int) string {
	width := len(strconv.Itoa(max(n-1, 0)))
	return fmt.Sprintf("%s_%0*d.png", prefix, width, i)
}

// SavePNGSequence writes one PNG per frame named prefix_NNN.png and returns
// the paths written.
func SavePNGSequence(prefix string, frames []*Framebuffer) ([]string, error) {
	paths := make([]string, 0, len(frames))
	for i, fb := range frames {
		if fb == nil {
			return paths, fmt.Errorf("png sequence: frame %d is nil", i)
		}
		name := SequenceName(prefix, i, len(frames))
		if err := fb.SavePNG(name); err != nil {
			return paths, fmt.Errorf("png sequence: %w", err)
		}
		paths = append(paths, name)
	}
	return paths, nil
}
