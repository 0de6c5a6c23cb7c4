// Package cli provides the command-line interface for Pigment.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/pigment/internal/assets"
	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/extract"
	"github.com/jmylchreest/pigment/internal/feature"
	"github.com/jmylchreest/pigment/internal/image"
	"github.com/jmylchreest/pigment/internal/security"
	"github.com/jmylchreest/pigment/internal/seed"
)

// accuracyValue adapts colour.Accuracy to the pflag.Value interface so
// unknown tiers are rejected at flag parse time.
type accuracyValue colour.Accuracy

var _ pflag.Value = (*accuracyValue)(nil)

// String returns the current accuracy tier.
func (a *accuracyValue) String() string {
	return string(*a)
}

// Set validates and stores an accuracy tier.
func (a *accuracyValue) Set(s string) error {
	acc := colour.Accuracy(s)
	if !colour.IsValidAccuracy(acc) {
		return fmt.Errorf("invalid accuracy: %s (valid: low, medium, high)", s)
	}
	*a = accuracyValue(acc)
	return nil
}

// Type returns the flag type name shown in help output.
func (a *accuracyValue) Type() string {
	return "accuracy"
}

// extractionOptions holds the flag values shared by every command that runs
// the extraction pipeline. Each command registers its own copy so flag
// values never leak between commands.
type extractionOptions struct {
	colours   int
	accuracy  accuracyValue
	seedMode  string
	seedValue int64
	budget    int
	memoize   bool
	cache     bool
	cacheDir  string
}

// registerFlags attaches the shared extraction flags to a command.
func (o *extractionOptions) registerFlags(cmd *cobra.Command) {
	o.accuracy = accuracyValue(colour.AccuracyLow)
	cmd.Flags().IntVarP(&o.colours, "colours", "c", extract.DefaultColourCount, "number of dominant colours to extract")
	cmd.Flags().VarP(&o.accuracy, "accuracy", "a", "distance accuracy: low (CIE76), medium (CIE94), high (CIEDE2000)")
	cmd.Flags().StringVar(&o.seedMode, "seed-mode", string(seed.ModeContent), "clustering seed mode: content, filepath, manual, random")
	cmd.Flags().Int64Var(&o.seedValue, "seed", extract.DefaultSeed, "clustering seed (only used with --seed-mode=manual)")
	cmd.Flags().IntVar(&o.budget, "budget", extract.DefaultBudget, "pixel sampling budget (0 samples every pixel)")
	cmd.Flags().BoolVar(&o.memoize, "memoize", false, "cache RGB to LAB conversions during extraction")
	cmd.Flags().BoolVar(&o.cache, "cache", false, "keep downloaded images in the local cache (HTTPS URLs only)")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "image cache directory (default ~/.cache/pigment/images)")
}

// run executes the extraction pipeline for one image path, which may be a
// local file, a directory, or an HTTP(S) URL.
func (o *extractionOptions) run(cmd *cobra.Command, imagePath string) (*extract.Result, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	if err := image.ValidateImagePath(imagePath); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	// Downloads that persist in the cache are restricted to HTTPS.
	if o.cache && isURL(imagePath) {
		if err := security.ValidateHTTPURL(imagePath); err != nil {
			return nil, fmt.Errorf("refusing to cache image: %w", err)
		}
	}

	resolvedPath, err := image.ResolveImagePath(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}
	if verbose && resolvedPath != imagePath {
		fmt.Fprintf(os.Stderr, "Resolved image: %s\n", resolvedPath)
	}

	var loader image.Loader
	if o.cache {
		loader = image.NewCachingSmartLoader(o.cacheDir)
	} else {
		loader = image.NewSmartLoader()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", resolvedPath)
	}
	img, err := loader.Load(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	if verbose {
		bounds := img.Bounds()
		fmt.Fprintf(os.Stderr, "Image loaded: %dx%d\n", bounds.Dx(), bounds.Dy())
	}

	mode, err := seed.ParseMode(o.seedMode)
	if err != nil {
		return nil, err
	}
	seedValue, err := seed.Calculate(img, resolvedPath, seed.Config{Mode: mode, Value: &o.seedValue})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate seed: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Seed: %d (mode: %s)\n", seedValue, mode)
	}

	config := extract.Config{
		K:        o.colours,
		Accuracy: colour.Accuracy(o.accuracy),
		Seed:     seedValue,
		Budget:   o.budget,
		Memoize:  o.memoize,
	}
	extractor, err := extract.New(config)
	if err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting %d colours (accuracy: %s)...\n", o.colours, o.accuracy.String())
	}
	result, err := extractor.Extract(img)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d colours from %d samples\n", result.Len(), result.SampleCount)
	}

	return result, nil
}

// loadScalerAssets loads the feature scaler from either a bundle archive or
// a scale/offset file pair. Labels are only available from bundles.
func loadScalerAssets(bundlePath, scalePath, offsetPath string) (*feature.Scaler, []string, error) {
	if bundlePath != "" {
		if scalePath != "" || offsetPath != "" {
			return nil, nil, fmt.Errorf("--bundle cannot be combined with --scale/--offset")
		}
		bundle, err := assets.LoadBundle(bundlePath)
		if err != nil {
			return nil, nil, err
		}
		return bundle.Scaler, bundle.Labels, nil
	}

	if scalePath == "" || offsetPath == "" {
		return nil, nil, fmt.Errorf("either --bundle or both --scale and --offset are required")
	}
	scaler, err := assets.LoadScaler(scalePath, offsetPath)
	if err != nil {
		return nil, nil, err
	}
	return scaler, nil, nil
}

// checkScalerLength verifies up front that the scaler was trained for the
// requested colour count, four components per colour.
func checkScalerLength(scaler *feature.Scaler, colours int) error {
	if scaler.Len() != colours*4 {
		return fmt.Errorf("scaler holds %d values but %d colours need %d (was the model trained for a different colour count?)",
			scaler.Len(), colours, colours*4)
	}
	return nil
}

// writeOutput writes formatted output to a file, or stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, output, path string) error {
	if path == "" {
		fmt.Print(output)
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Writing output to: %s\n", path)
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// isURL checks if a path is an HTTP/HTTPS URL.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
