// Package pixel provides the saturating 8-bit colour algebra used by the
// renderer. Every operation clamps to the channel range instead of wrapping.
package pixel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrDivisionByZero is returned when a divisor is zero or nearly zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidArgument is returned when a divisor is negative.
	ErrInvalidArgument = errors.New("invalid argument")
)

// epsilon is the tolerance used for "nearly zero" scalar checks.
const epsilon = 1e-9

// Color is four independent 8-bit channels.
// The zero value is transparent black.
type Color struct {
	R, G, B, A uint8
}

var _ color.Color = Color{}

// RGBA creates a color from all four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Named colors.
var (
	Black   = RGB(0, 0, 0)
	White   = RGB(255, 255, 255)
	Red     = RGB(255, 0, 0)
	Green   = RGB(0, 255, 0)
	Blue    = RGB(0, 0, 255)
	Yellow  = RGB(255, 255, 0)
	Cyan    = RGB(0, 255, 255)
	Magenta = RGB(255, 0, 255)
)

// Pack returns the color as one 32-bit word with R in the lowest byte and
// A in the highest. Ordering and inversion operate on this word.
func (c Color) Pack() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Unpack is the inverse of Pack.
func Unpack(v uint32) Color {
	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// ARGB returns the display word: A in the highest byte, then R, G, B.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromARGB is the inverse of ARGB.
func FromARGB(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// RGBA implements color.Color. Channels are treated as non-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// String formats the color as "(r, g, b, a)".
func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

func addSat(a, b uint8) uint8 {
	if a > math.MaxUint8-b {
		return math.MaxUint8
	}
	return a + b
}

func subSat(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}

// clampByte truncates v toward zero after clamping it to [0, 255].
func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}

// Add returns the channel-wise sum, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{addSat(c.R, o.R), addSat(c.G, o.G), addSat(c.B, o.B), addSat(c.A, o.A)}
}

// AddScalar adds s to every channel, saturating at 255.
func (c Color) AddScalar(s uint8) Color {
	return Color{addSat(c.R, s), addSat(c.G, s), addSat(c.B, s), addSat(c.A, s)}
}

// Sub returns the channel-wise difference, saturating at 0.
func (c Color) Sub(o Color) Color {
	return Color{subSat(c.R, o.R), subSat(c.G, o.G), subSat(c.B, o.B), subSat(c.A, o.A)}
}

// SubScalar subtracts s from every channel, saturating at 0.
func (c Color) SubScalar(s uint8) Color {
	return Color{subSat(c.R, s), subSat(c.G, s), subSat(c.B, s), subSat(c.A, s)}
}

// ScalarSub returns s - c per channel, saturating at 0.
func (c Color) ScalarSub(s uint8) Color {
	return Color{subSat(s, c.R), subSat(s, c.G), subSat(s, c.B), subSat(s, c.A)}
}

// Mul scales every channel by s and clamps to [0, 255].
// A scalar that is zero, negative or nearly zero yields Color{} (all four
// channels zero, alpha included).
func (c Color) Mul(s float64) Color {
	if math.IsNaN(s) || s <= epsilon {
		return Color{}
	}
	return Color{
		clampByte(float64(c.R) * s),
		clampByte(float64(c.G) * s),
		clampByte(float64(c.B) * s),
		clampByte(float64(c.A) * s),
	}
}

// Div divides every channel by s.
func (c Color) Div(s float64) (Color, error) {
	if math.IsNaN(s) || math.Abs(s) < epsilon {
		return Color{}, fmt.Errorf("divide %v by %g: %w", c, s, ErrDivisionByZero)
	}
	if s < 0 {
		return Color{}, fmt.Errorf("divide %v by %g: %w", c, s, ErrInvalidArgument)
	}
	return Color{
		clampByte(float64(c.R) / s),
		clampByte(float64(c.G) / s),
		clampByte(float64(c.B) / s),
		clampByte(float64(c.A) / s),
	}, nil
}

// ScalarDiv returns s / c per channel. Every channel of c is a divisor, so a
// zero channel fails.
func (c Color) ScalarDiv(s float64) (Color, error) {
	if c.hasZeroChannel() {
		return Color{}, fmt.Errorf("divide %g by %v: %w", s, c, ErrDivisionByZero)
	}
	if s < 0 {
		return Color{}, fmt.Errorf("divide %g by %v: %w", s, c, ErrInvalidArgument)
	}
	return Color{
		clampByte(s / float64(c.R)),
		clampByte(s / float64(c.G)),
		clampByte(s / float64(c.B)),
		clampByte(s / float64(c.A)),
	}, nil
}

// Mod returns c % s per channel.
func (c Color) Mod(s uint8) (Color, error) {
	if s == 0 {
		return Color{}, fmt.Errorf("modulo %v by 0: %w", c, ErrDivisionByZero)
	}
	return Color{c.R % s, c.G % s, c.B % s, c.A % s}, nil
}

// ScalarMod returns s % c per channel.
func (c Color) ScalarMod(s uint8) (Color, error) {
	if c.hasZeroChannel() {
		return Color{}, fmt.Errorf("modulo %d by %v: %w", s, c, ErrDivisionByZero)
	}
	return Color{s % c.R, s % c.G, s % c.B, s % c.A}, nil
}

func (c Color) hasZeroChannel() bool {
	return c.R == 0 || c.G == 0 || c.B == 0 || c.A == 0
}

// Invert complements R, G and B. Alpha is untouched.
func (c Color) Invert() Color {
	return Unpack(c.Pack() ^ 0x00FFFFFF)
}

// Grayscale replaces R, G and B with the rounded luminance
// 0.299R + 0.587G + 0.114B. Alpha is untouched.
func (c Color) Grayscale() Color {
	gray := clampByte(math.Round(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)))
	return Color{gray, gray, gray, c.A}
}

// Blend mixes two colors by averaging each channel.
func (c Color) Blend(o Color) Color {
	avg := func(a, b uint8) uint8 { return uint8((uint16(a) + uint16(b)) / 2) }
	return Color{avg(c.R, o.R), avg(c.G, o.G), avg(c.B, o.B), avg(c.A, o.A)}
}

// Equal reports whether all four channels match.
func (c Color) Equal(o Color) bool {
	return c == o
}

// Compare orders colors by their packed word. This is a bit-pattern order,
// not a perceptual one.
func (c Color) Compare(o Color) int {
	a, b := c.Pack(), o.Pack()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports c < o in packed order.
func (c Color) Less(o Color) bool { return c.Pack() < o.Pack() }

// LessEqual reports c <= o in packed order.
func (c Color) LessEqual(o Color) bool { return c.Pack() <= o.Pack() }

// Greater reports c > o in packed order.
func (c Color) Greater(o Color) bool { return c.Pack() > o.Pack() }

// GreaterEqual reports c >= o in packed order.
func (c Color) GreaterEqual(o Color) bool { return c.Pack() >= o.Pack() }
