// Package extract runs the dominant-colour pipeline end to end: pixel
// sampling, conversion to LAB, seeded clustering, and ranking.
package extract

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/feature"
)

// DominantColour is one ranked colour: the cluster centroid in LAB, the
// share of sampled pixels belonging to it, and the raw member count.
type DominantColour struct {
	LAB        colour.LAB
	Proportion float64
	Count      int
}

// RGB quantises the centroid to 8-bit RGB for display.
func (d DominantColour) RGB() colour.RGB {
	return d.LAB.RGB()
}

// Result holds one extraction run's output. Colours are ordered most
// dominant first and their proportions sum to one.
type Result struct {
	Colours     []DominantColour
	SampleCount int
}

// Len returns the number of dominant colours in the result.
func (r *Result) Len() int {
	return len(r.Colours)
}

// Get returns the colour at the specified rank.
// Returns an error if the rank is out of bounds.
func (r *Result) Get(index int) (DominantColour, error) {
	if index < 0 || index >= len(r.Colours) {
		return DominantColour{}, fmt.Errorf("index out of bounds: %d (result has %d colours)", index, len(r.Colours))
	}
	return r.Colours[index], nil
}

// ToHex converts the result colours to hex strings, most dominant first.
func (r *Result) ToHex() []string {
	hexColours := make([]string, len(r.Colours))
	for i, c := range r.Colours {
		hexColours[i] = c.RGB().Hex()
	}
	return hexColours
}

// Ranked returns the result as feature inputs: the LAB channels and the
// proportion of each colour, in rank order.
func (r *Result) Ranked() []feature.RankedColour {
	ranked := make([]feature.RankedColour, len(r.Colours))
	for i, c := range r.Colours {
		ranked[i] = feature.RankedColour{
			Channels:   [3]float64{c.LAB.L, c.LAB.A, c.LAB.B},
			Proportion: c.Proportion,
		}
	}
	return ranked
}

// Features produces the classifier-ready vector for this result using the
// model's scaler. The scaler length must be four times the colour count.
func (r *Result) Features(s *feature.Scaler) ([]float64, error) {
	return s.Vector(r.Ranked())
}

// ColourJSON represents one dominant colour in JSON output format.
type ColourJSON struct {
	Hex        string     `json:"hex"`
	RGB        colour.RGB `json:"rgb"`
	LAB        colour.LAB `json:"lab"`
	Proportion float64    `json:"proportion"`
	Count      int        `json:"count"`
}

// ResultJSON represents the result in JSON format.
type ResultJSON struct {
	Count       int          `json:"count"`
	SampleCount int          `json:"sample_count"`
	Colours     []ColourJSON `json:"colors"`
}

// ToJSON converts the result to JSON format.
func (r *Result) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(r.Colours))
	for i, c := range r.Colours {
		rgb := c.RGB()
		colours[i] = ColourJSON{
			Hex:        rgb.Hex(),
			RGB:        rgb,
			LAB:        c.LAB,
			Proportion: c.Proportion,
			Count:      c.Count,
		}
	}

	resultJSON := ResultJSON{
		Count:       len(r.Colours),
		SampleCount: r.SampleCount,
		Colours:     colours,
	}

	return json.MarshalIndent(resultJSON, "", "  ")
}

// String returns a human-readable string representation of the result.
func (r *Result) String() string {
	if len(r.Colours) == 0 {
		return "Empty result"
	}

	result := fmt.Sprintf("Dominant colours from %d samples:\n", r.SampleCount)
	for i, c := range r.Colours {
		rgb := c.RGB()
		result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, rgb.Hex(), rgb.String(), c.Proportion*100)
	}
	return result
}

// All returns an iterator over the result colours in rank order using Go
// 1.25 range over functions.
func (r *Result) All() func(func(int, DominantColour) bool) {
	return func(yield func(int, DominantColour) bool) {
		for i, c := range r.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
