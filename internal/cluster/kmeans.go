// Package cluster implements seeded k-means clustering over generic point
// types.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Point is the constraint for clusterable values. Implementations are plain
// value types; the three operations are all the clusterer needs to average
// members into a centroid.
type Point[P any] interface {
	Add(P) P
	Div(n int) P
	Zero() P
}

// ErrTooFewPoints is returned when a run asks for more clusters than there
// are points to fill them.
var ErrTooFewPoints = errors.New("too few points")

// DefaultThreshold is the membership-churn threshold used when a config
// leaves Threshold unset. Churn counts are whole numbers, so any value
// below one stops the run only once churn has stabilised exactly.
const DefaultThreshold = 0.0001

// Config controls a clustering run.
type Config[P Point[P]] struct {
	// K is the number of clusters to produce.
	K int

	// Seed drives centroid initialisation. Equal seeds over equal input
	// produce identical runs.
	Seed int64

	// Metric is the squared distance between two points.
	Metric func(a, b P) float64

	// Threshold stops iteration once the change in membership churn
	// between consecutive passes falls below it. Zero selects
	// DefaultThreshold.
	Threshold float64
}

// Validate checks the config for values that cannot produce a run.
func (c Config[P]) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", c.K)
	}
	if c.Metric == nil {
		return fmt.Errorf("metric must not be nil")
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Threshold)
	}
	return nil
}

// Cluster is one k-means cluster: the final centroid and how many points
// ended the run assigned to it. Clusters are indexed in centroid order, not
// by size; use Rank for a population ordering.
type Cluster[P Point[P]] struct {
	Centroid P
	Count    int
}

// KMeans partitions points into cfg.K clusters. Initial centroids are the
// first K entries of a seeded Fisher-Yates permutation of the points, so a
// fixed seed fixes the entire run. Iteration stops when the number of
// points changing cluster settles between consecutive passes. A cluster
// that loses all its members keeps its previous centroid rather than being
// reseeded, which keeps runs reproducible.
func KMeans[P Point[P]](points []P, cfg Config[P]) ([]Cluster[P], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(points) < cfg.K {
		return nil, fmt.Errorf("%w: need at least %d points for %d clusters, got %d",
			ErrTooFewPoints, cfg.K, cfg.K, len(points))
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(len(points))

	centroids := make([]P, cfg.K)
	for i := range centroids {
		centroids[i] = points[perm[i]]
	}

	memberships := make([]int, len(points))
	for i := range memberships {
		memberships[i] = -1
	}

	sums := make([]P, cfg.K)
	sizes := make([]int, cfg.K)
	previous := 0.0
	for {
		changed := 0.0
		for i := range sums {
			sums[i] = centroids[i].Zero()
			sizes[i] = 0
		}

		for i, p := range points {
			nearest := nearestCentroid(p, centroids, cfg.Metric)
			if memberships[i] != nearest {
				changed++
				memberships[i] = nearest
			}
			sums[nearest] = sums[nearest].Add(p)
			sizes[nearest]++
		}

		for i := range centroids {
			if sizes[i] > 0 {
				centroids[i] = sums[i].Div(sizes[i])
			}
		}

		if math.Abs(previous-changed) < threshold {
			break
		}
		previous = changed
	}

	clusters := make([]Cluster[P], cfg.K)
	for i := range clusters {
		clusters[i] = Cluster[P]{Centroid: centroids[i], Count: sizes[i]}
	}
	return clusters, nil
}

// nearestCentroid returns the index of the centroid closest to p. Ties go
// to the lowest index.
func nearestCentroid[P Point[P]](p P, centroids []P, metric func(a, b P) float64) int {
	nearest := 0
	best := metric(p, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := metric(p, centroids[i]); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}
