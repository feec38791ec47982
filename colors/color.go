package colors

import (
	"image/color"
	"math"
)

// Color4 is a linear RGBA color with float64 components, nominally in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color so textures can hand Color4 values out as
// image pixels.
func (c Color4) RGBA() (r, g, b, a uint32) {
	rf := clamp01(c.R)
	gf := clamp01(c.G)
	bf := clamp01(c.B)
	af := clamp01(c.A)

	// Convert to pre-multiplied 16-bit values
	return uint32(rf * af * 65535),
		uint32(gf * af * 65535),
		uint32(bf * af * 65535),
		uint32(af * 65535)
}

func FromStandardColor(c color.Color) Color4 {
	// Fast path: already a Color4
	if c4, ok := c.(Color4); ok {
		return c4
	}

	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color4{R: 0, G: 0, B: 0, A: 0}
	}

	// De-premultiply and normalize to [0,1]
	invA := float64(0xFFFF) / float64(a16)
	return Color4{
		R: float64(r16) * invA / 65535.0,
		G: float64(g16) * invA / 65535.0,
		B: float64(b16) * invA / 65535.0,
		A: float64(a16) / 65535.0,
	}
}

func From8BitRgb(r, g, b, a byte) Color4 {
	return Color4{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

func Red() Color4 {
	return Color4{R: 1, G: 0, B: 0, A: 1}
}

func Green() Color4 {
	return Color4{R: 0, G: 1, B: 0, A: 1}
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// Transparent is what a ray that hits nothing returns.
func Transparent() Color4 {
	return Color4{}
}

// Add returns c + o (component-wise).
func (c Color4) Add(o Color4) Color4 {
	return Color4{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Mul returns c * o (component-wise).
func (c Color4) Mul(o Color4) Color4 {
	return Color4{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Scale returns c * s (scalar).
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return Color4{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

func (c Color4) WithAlpha(a float64) Color4 {
	return Color4{
		R: c.R,
		G: c.G,
		B: c.B,
		A: a,
	}
}

// MaxChannel returns the largest of R, G and B.
func (c Color4) MaxChannel() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Equalize divides R, G and B by the largest channel when it exceeds 1,
// keeping the hue instead of clipping. Alpha is forced to 1.
func (c Color4) Equalize() Color4 {
	m := c.MaxChannel()
	if m > 1.0 {
		c.R /= m
		c.G /= m
		c.B /= m
	}
	c.A = 1.0
	return c
}

// ClampHigh caps R, G and B at 1 and forces alpha to 1.
func (c Color4) ClampHigh() Color4 {
	return Color4{
		R: math.Min(1.0, c.R),
		G: math.Min(1.0, c.G),
		B: math.Min(1.0, c.B),
		A: 1.0,
	}
}

// Sqrt applies a gamma of 2 to R, G and B; alpha is untouched.
// Negative channels map to 0.
func (c Color4) Sqrt() Color4 {
	return Color4{
		R: math.Sqrt(math.Max(0, c.R)),
		G: math.Sqrt(math.Max(0, c.G)),
		B: math.Sqrt(math.Max(0, c.B)),
		A: c.A,
	}
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// ToNRGBA returns the color as 8-bit channels, truncating toward zero.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// IsFinite reports whether no channel is NaN or infinite.
func (c Color4) IsFinite() bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// --- helpers ---

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// to8bit is int(255 * clamp01(x)) with truncation toward zero.
// NaN maps to 0.
func to8bit(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(255.0 * clamp01(x))
}
