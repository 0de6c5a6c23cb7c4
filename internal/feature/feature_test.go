// Package feature flattens ranked colours into the normalised vectors a
// classifier model consumes.
package feature

import (
	"errors"
	"math"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name    string
		colours []RankedColour
		want    []float64
	}{
		{
			name:    "empty",
			colours: []RankedColour{},
			want:    []float64{},
		},
		{
			name: "single colour",
			colours: []RankedColour{
				{Channels: [3]float64{10, 20, 30}, Proportion: 1.0},
			},
			want: []float64{10, 20, 30, 1.0},
		},
		{
			name: "preserves ranking order",
			colours: []RankedColour{
				{Channels: [3]float64{1, 2, 3}, Proportion: 0.5},
				{Channels: [3]float64{4, 5, 6}, Proportion: 0.3},
				{Channels: [3]float64{7, 8, 9}, Proportion: 0.2},
			},
			want: []float64{1, 2, 3, 0.5, 4, 5, 6, 0.3, 7, 8, 9, 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.colours)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Flatten()) = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Flatten()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewScaler(t *testing.T) {
	tests := []struct {
		name    string
		scale   []float64
		offset  []float64
		wantErr bool
	}{
		{
			name:    "matching lengths",
			scale:   []float64{1, 2, 3, 4},
			offset:  []float64{0, 0, 0, 0},
			wantErr: false,
		},
		{
			name:    "empty arrays",
			scale:   []float64{},
			offset:  []float64{},
			wantErr: false,
		},
		{
			name:    "offset shorter",
			scale:   []float64{1, 2, 3, 4},
			offset:  []float64{0, 0},
			wantErr: true,
		},
		{
			name:    "scale shorter",
			scale:   []float64{1},
			offset:  []float64{0, 0, 0, 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScaler(tt.scale, tt.offset)
			if tt.wantErr {
				if !errors.Is(err, ErrLengthMismatch) {
					t.Errorf("NewScaler() error = %v, want ErrLengthMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewScaler() error = %v", err)
			}
			if s.Len() != len(tt.scale) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.scale))
			}
		})
	}
}

func TestScalerApply(t *testing.T) {
	s, err := NewScaler(
		[]float64{2, 0.5, 1, 10},
		[]float64{1, -1, 0, 0.5},
	)
	if err != nil {
		t.Fatalf("NewScaler() error = %v", err)
	}

	got, err := s.Apply([]float64{3, 8, -2, 0.25})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := []float64{7, 3, -2, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Apply()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScalerApplyLengthMismatch(t *testing.T) {
	s, err := NewScaler([]float64{1, 1, 1, 1}, []float64{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewScaler() error = %v", err)
	}

	if _, err := s.Apply([]float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Apply() error = %v, want ErrLengthMismatch", err)
	}
}

func TestScalerVector(t *testing.T) {
	// Three ranked colours flatten to twelve components; the normalised
	// result must match raw*scale+offset at every position.
	colours := []RankedColour{
		{Channels: [3]float64{50, 10, -10}, Proportion: 0.6},
		{Channels: [3]float64{70, -5, 20}, Proportion: 0.3},
		{Channels: [3]float64{20, 0, 0}, Proportion: 0.1},
	}
	scale := []float64{0.01, 0.02, 0.02, 1, 0.01, 0.02, 0.02, 1, 0.01, 0.02, 0.02, 1}
	offset := []float64{-0.5, 0, 0, 0, -0.5, 0, 0, 0, -0.5, 0, 0, 0}

	s, err := NewScaler(scale, offset)
	if err != nil {
		t.Fatalf("NewScaler() error = %v", err)
	}

	got, err := s.Vector(colours)
	if err != nil {
		t.Fatalf("Vector() error = %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("len(Vector()) = %d, want 12", len(got))
	}

	raw := Flatten(colours)
	for i := range got {
		want := raw[i]*scale[i] + offset[i]
		if math.Abs(got[i]-want) > 1e-12 {
			t.Errorf("Vector()[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestScalerVectorWrongClusterCount(t *testing.T) {
	s, err := NewScaler(make([]float64, 8), make([]float64, 8))
	if err != nil {
		t.Fatalf("NewScaler() error = %v", err)
	}

	colours := []RankedColour{
		{Channels: [3]float64{1, 2, 3}, Proportion: 1.0},
	}
	if _, err := s.Vector(colours); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Vector() error = %v, want ErrLengthMismatch", err)
	}
}
