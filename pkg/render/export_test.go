package render

import (
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/lumen/pkg/pixel"
)

func solidFrames(n int, colors ...pixel.Color) []*Framebuffer {
	frames := make([]*Framebuffer, n)
	for i := range frames {
		fb := NewFramebuffer(6, 4)
		fb.Clear(colors[i%len(colors)])
		frames[i] = fb
	}
	return frames
}

func TestEncodeGIF(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, solidFrames(3, pixel.Red, pixel.Blue), 5); err != nil {
		t.Fatal(err)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 5 {
			t.Errorf("frame %d delay = %d, want 5", i, d)
		}
	}
	r, _, b, _ := g.Image[0].At(0, 0).RGBA()
	if r>>8 < 200 || b>>8 > 50 {
		t.Errorf("first frame is not red: r=%d b=%d", r>>8, b>>8)
	}
}

func TestEncodeGIFErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, nil, 5); err == nil {
		t.Error("empty frame list accepted")
	}
	if err := EncodeGIF(&buf, []*Framebuffer{nil}, 5); err == nil {
		t.Error("nil frame accepted")
	}
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.gif")
	if err := SaveGIF(path, solidFrames(2, pixel.Green), 10); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty gif written")
	}
}

func TestSequenceName(t *testing.T) {
	tests := []struct {
		i, n int
		want string
	}{
		{0, 1, "f_0.png"},
		{3, 10, "f_3.png"},
		{3, 11, "f_03.png"},
		{3, 100, "f_03.png"},
		{42, 101, "f_042.png"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := SequenceName("f", tc.i, tc.n); got != tc.want {
				t.Errorf("SequenceName(%d, %d) = %q, want %q", tc.i, tc.n, got, tc.want)
			}
		})
	}
}

func TestSavePNGSequence(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "frame")
	paths, err := SavePNGSequence(prefix, solidFrames(12, pixel.White, pixel.Black))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 12 {
		t.Fatalf("wrote %d files, want 12", len(paths))
	}
	if want := prefix + "_00.png"; paths[0] != want {
		t.Errorf("first path = %q, want %q", paths[0], want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}
}
