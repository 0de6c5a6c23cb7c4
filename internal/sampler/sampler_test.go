// Package sampler turns images into bounded sets of pixel samples for
// clustering.
package sampler

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/pigment/internal/colour"
)

// solidImage returns an opaque single-colour image of the given size.
func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestScaledDimensions(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		budget     int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "wide landscape",
			width:      100,
			height:     50,
			budget:     1000,
			wantWidth:  44,
			wantHeight: 22,
		},
		{
			name:       "square",
			width:      1000,
			height:     1000,
			budget:     400,
			wantWidth:  20,
			wantHeight: 20,
		},
		{
			name:       "single row flooring to zero height",
			width:      1000,
			height:     1,
			budget:     10,
			wantWidth:  100,
			wantHeight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotWidth, gotHeight := scaledDimensions(tt.width, tt.height, tt.budget)
			if gotWidth != tt.wantWidth || gotHeight != tt.wantHeight {
				t.Errorf("scaledDimensions(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.width, tt.height, tt.budget, gotWidth, gotHeight, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestSampleWithinBudget(t *testing.T) {
	img := solidImage(100, 50, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	samples := Sample(img, 1000)

	// 100x50 at a 1000 pixel budget scales to 44x22.
	if got := len(samples); got != 44*22 {
		t.Errorf("len(samples) = %d, want %d", got, 44*22)
	}
}

func TestSampleSmallImageNotScaled(t *testing.T) {
	img := solidImage(30, 30, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	samples := Sample(img, 1000)

	if got := len(samples); got != 900 {
		t.Errorf("len(samples) = %d, want 900", got)
	}
	want := colour.RGB{R: 10, G: 20, B: 30}
	for _, s := range samples {
		if s != want {
			t.Fatalf("sample = %+v, want %+v", s, want)
		}
	}
}

func TestSampleNeverExceedsBudget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		budget int
	}{
		{name: "landscape", width: 640, height: 480, budget: 1000},
		{name: "portrait", width: 480, height: 640, budget: 1000},
		{name: "panorama", width: 800, height: 100, budget: 500},
		{name: "tiny budget", width: 300, height: 300, budget: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.width, tt.height, color.RGBA{R: 1, G: 2, B: 3, A: 255})
			samples := Sample(img, tt.budget)
			if len(samples) > tt.budget {
				t.Errorf("len(samples) = %d, want at most %d", len(samples), tt.budget)
			}
			if len(samples) == 0 {
				t.Errorf("len(samples) = 0, want at least one sample")
			}
		})
	}
}

func TestSampleUnboundedBudget(t *testing.T) {
	img := solidImage(80, 60, color.RGBA{R: 5, G: 6, B: 7, A: 255})

	samples := Sample(img, 0)

	if got := len(samples); got != 80*60 {
		t.Errorf("len(samples) = %d, want %d", got, 80*60)
	}
}

func TestSampleSkipsTranslucentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, A: 128})
	img.SetRGBA(2, 0, color.RGBA{A: 0})
	img.SetRGBA(3, 0, color.RGBA{G: 255, A: 255})

	samples := Sample(img, 0)

	if got := len(samples); got != 2 {
		t.Fatalf("len(samples) = %d, want 2", got)
	}
	if samples[0] != (colour.RGB{R: 255}) {
		t.Errorf("samples[0] = %+v, want opaque red", samples[0])
	}
	if samples[1] != (colour.RGB{G: 255}) {
		t.Errorf("samples[1] = %+v, want opaque green", samples[1])
	}
}

func TestSampleFullyTransparentImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	if samples := Sample(img, 0); len(samples) != 0 {
		t.Errorf("len(samples) = %d, want 0", len(samples))
	}
}

func TestSampleZeroAreaImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	if samples := Sample(img, 100); len(samples) != 0 {
		t.Errorf("len(samples) = %d, want 0", len(samples))
	}
}

func TestSampleDegenerateScaledHeight(t *testing.T) {
	// A single-row panorama with a tiny budget floors the scaled height to
	// zero; no samples is the defined result.
	img := solidImage(1000, 1, color.RGBA{R: 9, A: 255})

	if samples := Sample(img, 10); len(samples) != 0 {
		t.Errorf("len(samples) = %d, want 0", len(samples))
	}
}

func TestSampleScaledSolidColourSurvives(t *testing.T) {
	img := solidImage(200, 200, color.RGBA{R: 180, G: 90, B: 45, A: 255})

	samples := Sample(img, 100)

	if len(samples) == 0 {
		t.Fatal("len(samples) = 0, want scaled samples")
	}
	for _, s := range samples {
		if absDelta(s.R, 180) > 1 || absDelta(s.G, 90) > 1 || absDelta(s.B, 45) > 1 {
			t.Fatalf("scaled sample = %+v, want within 1 of {180 90 45}", s)
		}
	}
}

func TestSampleOffsetBounds(t *testing.T) {
	// Sub-images have bounds that do not start at the origin.
	base := solidImage(10, 10, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	sub, ok := base.SubImage(image.Rect(5, 5, 8, 8)).(*image.RGBA)
	if !ok {
		t.Fatal("SubImage did not return *image.RGBA")
	}

	samples := Sample(sub, 0)

	if got := len(samples); got != 9 {
		t.Fatalf("len(samples) = %d, want 9", got)
	}
	want := colour.RGB{R: 7, G: 8, B: 9}
	for _, s := range samples {
		if s != want {
			t.Fatalf("sample = %+v, want %+v", s, want)
		}
	}
}

func absDelta(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
