// Package assets loads feature-scaling assets from plain or compressed files.
package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmylchreest/pigment/internal/compression"
	"github.com/jmylchreest/pigment/internal/feature"
)

// ParseArray reads newline-separated float values. Blank lines and lines
// starting with '#' are skipped.
func ParseArray(r io.Reader) ([]float64, error) {
	var values []float64

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q: %w", line, text, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	return values, nil
}

// ParseLabels reads newline-separated label strings. Blank lines and lines
// starting with '#' are skipped.
func ParseLabels(r io.Reader) ([]string, error) {
	var labels []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		labels = append(labels, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return labels, nil
}

// LoadArray reads float values from a file, decompressing .gz, .xz, and .bz2
// files transparently.
func LoadArray(path string) ([]float64, error) {
	data, err := os.ReadFile(path) // #nosec G304 - Asset path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read asset file: %w", err)
	}

	data, err = compression.Decompress(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	values, err := ParseArray(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

// LoadLabels reads label strings from a file, decompressing .gz, .xz, and
// .bz2 files transparently.
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - Asset path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read asset file: %w", err)
	}

	data, err = compression.Decompress(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	labels, err := ParseLabels(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return labels, nil
}

// LoadScaler builds a feature scaler from scale and offset asset files.
func LoadScaler(scalePath, offsetPath string) (*feature.Scaler, error) {
	scale, err := LoadArray(scalePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scale values: %w", err)
	}
	if len(scale) == 0 {
		return nil, fmt.Errorf("scale file %s contains no values", scalePath)
	}

	offset, err := LoadArray(offsetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load offset values: %w", err)
	}

	scaler, err := feature.NewScaler(scale, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid scaler assets: %w", err)
	}
	return scaler, nil
}
