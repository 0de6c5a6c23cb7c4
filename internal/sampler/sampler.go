// Package sampler turns images into bounded sets of pixel samples for
// clustering.
package sampler

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/pigment/internal/colour"
)

// Sample collects the fully opaque pixels of img as 8-bit RGB values. When
// budget is positive and the image holds more pixels than the budget, the
// image is first scaled down to an aspect-preserving size of at most budget
// pixels using bilinear interpolation. A budget of zero or less samples
// every pixel.
//
// Translucent and transparent pixels are skipped, so the result can be
// shorter than the pixel count, and an image with no opaque pixels yields
// no samples at all. Extreme aspect ratios can floor a scaled dimension to
// zero, which also yields no samples.
func Sample(img image.Image, budget int) []colour.RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	if budget > 0 && width*height > budget {
		width, height = scaledDimensions(width, height, budget)
		if width <= 0 || height <= 0 {
			return nil
		}
		img = scale(img, width, height)
	}

	samples := make([]colour.RGB, 0, width*height)
	target := img.Bounds()
	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a != 0xffff {
				continue
			}
			samples = append(samples, colour.RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}
	return samples
}

// scaledDimensions computes an aspect-preserving size of at most budget
// pixels. Both dimensions floor, so the product never exceeds the budget.
func scaledDimensions(width, height, budget int) (int, int) {
	aspect := float64(width) / float64(height)
	scaledWidth := math.Sqrt(aspect * float64(budget))
	return int(scaledWidth), int(float64(budget) / scaledWidth)
}

// scale resizes img to width by height with bilinear interpolation.
func scale(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
