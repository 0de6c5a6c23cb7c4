// Package cluster implements seeded k-means clustering over generic point
// types.
package cluster

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// vec is a minimal two-dimensional point used to exercise the clusterer
// without depending on any colour type.
type vec struct {
	x, y float64
}

func (v vec) Add(o vec) vec { return vec{x: v.x + o.x, y: v.y + o.y} }
func (v vec) Div(n int) vec { return vec{x: v.x / float64(n), y: v.y / float64(n)} }
func (v vec) Zero() vec     { return vec{} }

func squaredDistance(a, b vec) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return dx*dx + dy*dy
}

func TestKMeansSeparatesWellSpacedGroups(t *testing.T) {
	points := []vec{
		{x: 0, y: 0}, {x: 1, y: 0}, {x: 0, y: 1}, {x: 1, y: 1},
		{x: 100, y: 100}, {x: 101, y: 100}, {x: 100, y: 101}, {x: 101, y: 101},
	}
	cfg := Config[vec]{K: 2, Seed: 42, Metric: squaredDistance}

	clusters, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("KMeans() returned %d clusters, want 2", len(clusters))
	}

	for _, c := range clusters {
		if c.Count != 4 {
			t.Errorf("cluster count = %d, want 4", c.Count)
		}
		nearLow := math.Abs(c.Centroid.x-0.5) < 1e-9 && math.Abs(c.Centroid.y-0.5) < 1e-9
		nearHigh := math.Abs(c.Centroid.x-100.5) < 1e-9 && math.Abs(c.Centroid.y-100.5) < 1e-9
		if !nearLow && !nearHigh {
			t.Errorf("centroid = %+v, want the mean of one group", c.Centroid)
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]vec, 200)
	for i := range points {
		points[i] = vec{x: rng.Float64() * 50, y: rng.Float64() * 50}
	}
	cfg := Config[vec]{K: 5, Seed: 99, Metric: squaredDistance}

	first, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}
	second, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() second run error = %v", err)
	}

	for i := range first {
		if first[i].Centroid != second[i].Centroid {
			t.Errorf("cluster %d centroid %+v, second run %+v", i, first[i].Centroid, second[i].Centroid)
		}
		if first[i].Count != second[i].Count {
			t.Errorf("cluster %d count %d, second run %d", i, first[i].Count, second[i].Count)
		}
	}
}

func TestKMeansSingleCluster(t *testing.T) {
	points := []vec{
		{x: 2, y: 0},
		{x: 4, y: 2},
		{x: 6, y: 4},
	}
	cfg := Config[vec]{K: 1, Seed: 1, Metric: squaredDistance}

	clusters, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("KMeans() returned %d clusters, want 1", len(clusters))
	}
	if clusters[0].Count != 3 {
		t.Errorf("Count = %d, want 3", clusters[0].Count)
	}
	if math.Abs(clusters[0].Centroid.x-4) > 1e-9 || math.Abs(clusters[0].Centroid.y-2) > 1e-9 {
		t.Errorf("Centroid = %+v, want the mean {4 2}", clusters[0].Centroid)
	}
}

func TestKMeansTooFewPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []vec
		k      int
	}{
		{
			name:   "more clusters than points",
			points: []vec{{x: 1, y: 1}, {x: 2, y: 2}},
			k:      3,
		},
		{
			name:   "no points",
			points: []vec{},
			k:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config[vec]{K: tt.k, Seed: 1, Metric: squaredDistance}
			_, err := KMeans(tt.points, cfg)
			if !errors.Is(err, ErrTooFewPoints) {
				t.Errorf("KMeans() error = %v, want ErrTooFewPoints", err)
			}
		})
	}
}

func TestKMeansEachPointItsOwnCluster(t *testing.T) {
	points := []vec{
		{x: 0, y: 0},
		{x: 10, y: 0},
		{x: 0, y: 10},
		{x: 10, y: 10},
	}
	cfg := Config[vec]{K: 4, Seed: 3, Metric: squaredDistance}

	clusters, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}

	seen := make(map[vec]bool)
	for _, c := range clusters {
		if c.Count != 1 {
			t.Errorf("cluster count = %d, want 1", c.Count)
		}
		seen[c.Centroid] = true
	}
	for _, p := range points {
		if !seen[p] {
			t.Errorf("point %+v is not a centroid of any cluster", p)
		}
	}
}

func TestKMeansEmptyClusterKeepsCentroid(t *testing.T) {
	// Every point is identical, so one of the two clusters necessarily ends
	// the run empty. It must keep its initial centroid instead of dividing
	// by zero or being reseeded.
	same := vec{x: 3, y: 4}
	points := []vec{same, same, same, same, same}
	cfg := Config[vec]{K: 2, Seed: 11, Metric: squaredDistance}

	clusters, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}

	if clusters[0].Count != 5 {
		t.Errorf("clusters[0].Count = %d, want 5", clusters[0].Count)
	}
	if clusters[1].Count != 0 {
		t.Errorf("clusters[1].Count = %d, want 0", clusters[1].Count)
	}
	for i, c := range clusters {
		if c.Centroid != same {
			t.Errorf("clusters[%d].Centroid = %+v, want %+v", i, c.Centroid, same)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config[vec]
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config[vec]{K: 3, Metric: squaredDistance},
			wantErr: false,
		},
		{
			name:    "valid with threshold",
			cfg:     Config[vec]{K: 1, Metric: squaredDistance, Threshold: 0.5},
			wantErr: false,
		},
		{
			name:    "zero clusters",
			cfg:     Config[vec]{K: 0, Metric: squaredDistance},
			wantErr: true,
		},
		{
			name:    "negative clusters",
			cfg:     Config[vec]{K: -2, Metric: squaredDistance},
			wantErr: true,
		},
		{
			name:    "nil metric",
			cfg:     Config[vec]{K: 3},
			wantErr: true,
		},
		{
			name:    "negative threshold",
			cfg:     Config[vec]{K: 3, Metric: squaredDistance, Threshold: -0.1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
