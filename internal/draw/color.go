package draw

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 24-bit color stored per canvas sub-pixel.
type RGB struct {
	R, G, B uint8
}

// Hex parses "#rrggbb" (or "#rgb").
func Hex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// MustHex is Hex for package-level palette constants; it panics on bad input.
func MustHex(s string) RGB {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Colorful returns c as a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Over composites src onto c with the given opacity in [0,1].
func (c RGB) Over(src RGB, alpha float64) RGB {
	switch {
	case alpha >= 1:
		return src
	case alpha <= 0:
		return c
	}
	return FromColorful(c.Colorful().BlendRgb(src.Colorful(), alpha))
}

// Lerp is the color a fraction t of the way from a to b.
func Lerp(a, b RGB, t float64) RGB {
	return a.Over(b, t)
}
