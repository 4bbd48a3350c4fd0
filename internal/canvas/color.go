package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triple with each channel in [0, 1]
type Color struct {
	R, G, B float64
}

// RGBA converts to an opaque 8-bit color
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(v * 255))
}

// ParseHex parses "#RRGGBB" or "#RGB"
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// Hex is ParseHex for compile-time constants; it panics on bad input
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
