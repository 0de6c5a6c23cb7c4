// Package feature flattens ranked colours into the normalised vectors a
// classifier model consumes.
package feature

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when a vector and the scaler arrays
// disagree about how many components a feature vector has.
var ErrLengthMismatch = errors.New("length mismatch")

// RankedColour is one ranked extraction result as it enters a feature
// vector: three colour channels and the cluster's share of the sampled
// pixels.
type RankedColour struct {
	Channels   [3]float64
	Proportion float64
}

// Flatten lays ranked colours out as a flat vector, four values per
// colour: the three channels followed by the proportion. Order is
// preserved, so the most dominant colour occupies the first four
// positions.
func Flatten(colours []RankedColour) []float64 {
	out := make([]float64, 0, len(colours)*4)
	for _, c := range colours {
		out = append(out, c.Channels[0], c.Channels[1], c.Channels[2], c.Proportion)
	}
	return out
}

// Scaler holds the position-wise affine transform a trained model expects
// its inputs to be normalised with. Scale and Offset are parallel arrays;
// position i of a raw vector becomes raw[i]*Scale[i] + Offset[i].
type Scaler struct {
	Scale  []float64
	Offset []float64
}

// NewScaler builds a Scaler from parallel scale and offset arrays. The
// arrays must be the same length.
func NewScaler(scale, offset []float64) (*Scaler, error) {
	if len(scale) != len(offset) {
		return nil, fmt.Errorf("%w: %d scale values against %d offsets",
			ErrLengthMismatch, len(scale), len(offset))
	}
	return &Scaler{Scale: scale, Offset: offset}, nil
}

// Len reports how many components the scaler transforms.
func (s *Scaler) Len() int {
	return len(s.Scale)
}

// Apply normalises a raw vector. The vector length must match the scaler;
// a mismatch means the model was trained for a different cluster count and
// is reported as an error rather than truncated.
func (s *Scaler) Apply(raw []float64) ([]float64, error) {
	if len(raw) != len(s.Scale) {
		return nil, fmt.Errorf("%w: vector has %d components, scaler expects %d",
			ErrLengthMismatch, len(raw), len(s.Scale))
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = v*s.Scale[i] + s.Offset[i]
	}
	return out, nil
}

// Vector flattens ranked colours and applies the scaler in one step.
func (s *Scaler) Vector(colours []RankedColour) ([]float64, error) {
	return s.Apply(Flatten(colours))
}
