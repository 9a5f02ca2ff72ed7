package gradient

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit true-color value
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex converts a "#rrggbb" (or "#rgb") string into an RGB value
func ParseHex(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is ParseHex for static color tables.
func MustParseHex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// Hex returns the "#rrggbb" representation of the color
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Generate returns steps colors blending from start toward end.
//
// The blend factor is advanced before each color is computed, so the first
// entry is already one step away from start and the last one lands on end
// (give or take float32 drift). Channels are truncated, not rounded.
func Generate(start, end RGB, steps int) []RGB {
	if steps <= 0 {
		return []RGB{}
	}

	colors := make([]RGB, 0, steps)
	step := float32(1) / float32(steps)
	var alpha float32

	for i := 0; i < steps; i++ {
		alpha += step
		colors = append(colors, RGB{
			R: blend(start.R, end.R, alpha),
			G: blend(start.G, end.G, alpha),
			B: blend(start.B, end.B, alpha),
		})
	}
	return colors
}

func blend(from, to uint8, alpha float32) uint8 {
	// explicit conversions keep the products from being fused
	v := float32(float32(to)*alpha) + float32((1-alpha)*float32(from))
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// At returns colors[idx], or fallback when idx is outside the slice
func At(colors []RGB, idx int, fallback RGB) RGB {
	if idx < 0 || idx >= len(colors) {
		return fallback
	}
	return colors[idx]
}
