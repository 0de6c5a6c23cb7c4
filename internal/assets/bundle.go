package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/pigment/internal/compression"
	"github.com/jmylchreest/pigment/internal/feature"
)

// Archive member names recognised in scaler bundles.
const (
	ScaleFilename  = "scale.txt"
	OffsetFilename = "offset.txt"
	LabelsFilename = "labels.txt"
)

// Bundle holds the assets of a packaged scaler: the scaler itself and the
// optional class labels that accompany it.
type Bundle struct {
	Scaler *feature.Scaler
	Labels []string
}

// LoadBundle reads a scaler bundle archive (tar.gz, tar.xz, tar.bz2, or zip).
// The archive must contain scale.txt and offset.txt; labels.txt is optional.
// Members may live at the archive root or nested under a single directory.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path) // #nosec G304 - Bundle path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}

	files, err := compression.ReadArchive(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle archive: %w", err)
	}

	scaleData, ok := compression.Member(files, ScaleFilename)
	if !ok {
		return nil, fmt.Errorf("bundle is missing %s", ScaleFilename)
	}
	offsetData, ok := compression.Member(files, OffsetFilename)
	if !ok {
		return nil, fmt.Errorf("bundle is missing %s", OffsetFilename)
	}

	scale, err := ParseArray(bytes.NewReader(scaleData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ScaleFilename, err)
	}
	if len(scale) == 0 {
		return nil, fmt.Errorf("bundle %s contains no values", ScaleFilename)
	}
	offset, err := ParseArray(bytes.NewReader(offsetData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", OffsetFilename, err)
	}

	scaler, err := feature.NewScaler(scale, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid scaler bundle: %w", err)
	}

	bundle := &Bundle{Scaler: scaler}
	if labelsData, ok := compression.Member(files, LabelsFilename); ok {
		labels, err := ParseLabels(bytes.NewReader(labelsData))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", LabelsFilename, err)
		}
		bundle.Labels = labels
	}

	return bundle, nil
}
