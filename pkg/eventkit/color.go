package eventkit

import (
	"github.com/lucasb-eyer/go-colorful"
)

// PlaceholderColor is used for any calendar without readable color
// components.
const PlaceholderColor = "#888888"

// HexColor flattens RGB components in [0,1] to a #rrggbb string.
func HexColor(r, g, b float64) string {
	c := colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
	return c.Hex()
}

// NormalizeHex validates a stored color value, returning the canonical
// lowercase #rrggbb form or the placeholder gray.
func NormalizeHex(s string) string {
	if s == "" {
		return PlaceholderColor
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return PlaceholderColor
	}
	return c.Hex()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
