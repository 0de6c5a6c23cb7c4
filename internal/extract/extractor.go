// Package extract runs the dominant-colour pipeline end to end: pixel
// sampling, conversion to LAB, seeded clustering, and ranking.
package extract

import (
	"errors"
	"fmt"
	"image"

	"github.com/jmylchreest/pigment/internal/cluster"
	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/sampler"
)

// ErrNoSamples is returned when an image yields no pixels to cluster,
// either because it has zero area or because nothing in it is fully
// opaque.
var ErrNoSamples = errors.New("no samples")

const (
	// DefaultColourCount is the number of dominant colours extracted when
	// a config does not say otherwise.
	DefaultColourCount = 6

	// DefaultSeed fixes centroid initialisation for repeatable output.
	DefaultSeed = 3571

	// DefaultBudget bounds the pixels sampled from large images. A
	// thousand pixels is plenty for stable dominant colours and keeps the
	// clustering cost flat regardless of input resolution.
	DefaultBudget = 1000
)

// Config controls an extraction run.
type Config struct {
	// K is the number of dominant colours to produce.
	K int

	// Accuracy selects the perceptual distance formula used while
	// clustering.
	Accuracy colour.Accuracy

	// Seed drives centroid initialisation. Runs with equal seeds over
	// equal input produce identical results.
	Seed int64

	// Budget caps how many pixels are sampled from the image. Zero
	// samples every pixel, which is only sensible for small images.
	Budget int

	// Memoize caches RGB to LAB conversions across the extractor's
	// lifetime. Worth enabling for screenshots and other flat-colour
	// imagery; wasteful on photographs.
	Memoize bool
}

// DefaultConfig returns the configuration used when callers have no
// opinion: six colours, low accuracy, a fixed seed, and a thousand-pixel
// budget.
func DefaultConfig() Config {
	return Config{
		K:        DefaultColourCount,
		Accuracy: colour.AccuracyLow,
		Seed:     DefaultSeed,
		Budget:   DefaultBudget,
	}
}

// Validate checks the configuration for values no run can satisfy.
func (c Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.K)
	}
	if !colour.IsValidAccuracy(c.Accuracy) {
		return fmt.Errorf("invalid accuracy: %s (valid accuracies: %v)", c.Accuracy, colour.ValidAccuracies())
	}
	if c.Budget < 0 {
		return fmt.Errorf("pixel budget must not be negative, got %d", c.Budget)
	}
	return nil
}

// Extractor extracts dominant colours from images. A single extractor may
// be reused across images; with memoization enabled the conversion cache
// carries over between calls. Extractors are not safe for concurrent use.
type Extractor struct {
	config Config
	metric colour.DistanceFunc
	cache  *colour.ConversionCache
}

// New builds an extractor from a validated config.
func New(config Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	metric, err := colour.MetricFor(config.Accuracy)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		config: config,
		metric: metric,
	}
	if config.Memoize {
		e.cache = colour.NewConversionCache()
	}
	return e, nil
}

// Extract samples the image, clusters the samples in LAB space, and
// returns the dominant colours ranked most populous first.
func (e *Extractor) Extract(img image.Image) (*Result, error) {
	samples := sampler.Sample(img, e.config.Budget)
	if len(samples) == 0 {
		bounds := img.Bounds()
		return nil, fmt.Errorf("%w: %dx%d image has no opaque pixels",
			ErrNoSamples, bounds.Dx(), bounds.Dy())
	}

	points := make([]colour.LAB, len(samples))
	if e.cache != nil {
		for i, s := range samples {
			points[i] = e.cache.LAB(s)
		}
	} else {
		for i, s := range samples {
			points[i] = s.LAB()
		}
	}

	clusters, err := cluster.KMeans(points, cluster.Config[colour.LAB]{
		K:      e.config.K,
		Seed:   e.config.Seed,
		Metric: e.metric,
	})
	if err != nil {
		return nil, fmt.Errorf("clustering %d samples: %w", len(points), err)
	}

	ranked := cluster.Rank(clusters)
	colours := make([]DominantColour, len(ranked))
	for i, r := range ranked {
		colours[i] = DominantColour{
			LAB:        r.Centroid,
			Proportion: r.Proportion,
			Count:      r.Count,
		}
	}

	return &Result{
		Colours:     colours,
		SampleCount: len(samples),
	}, nil
}
