// Package colour provides the colour types shared across the extraction
// pipeline.
package colour

import (
	"fmt"
	"math"
)

// RGB is an 8-bit sRGB colour as sampled from an image.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// SRGB converts the 8-bit colour to floating-point sRGB with channels in [0, 1].
func (rgb RGB) SRGB() SRGB {
	return SRGB{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// LAB converts the 8-bit colour through the full forward pipeline.
func (rgb RGB) LAB() LAB {
	return rgb.SRGB().LAB()
}

// RGB quantizes the colour to 8-bit sRGB for display consumers.
// Out-of-gamut components are pinned to [0, 255]; this is the only point in
// the pipeline where values are clamped.
func (c SRGB) RGB() RGB {
	return RGB{
		R: quantizeChannel(c.R),
		G: quantizeChannel(c.G),
		B: quantizeChannel(c.B),
	}
}

// quantizeChannel rounds a [0, 1] channel to its 8-bit value, saturating
// out-of-range input.
func quantizeChannel(v float64) uint8 {
	scaled := math.Round(v * 255.0)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
