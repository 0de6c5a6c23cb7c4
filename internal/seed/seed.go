// Package seed derives the clustering seed that makes extraction runs
// reproducible. The same seed over the same image always yields the same
// dominant colours, so how the seed is chosen decides what "the same"
// means: same content, same path, a fixed value, or nothing at all.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the clustering seed is generated.
type Mode string

const (
	// ModeContent derives the seed from a hash of the image content
	// (default, identical images give identical results wherever they
	// live).
	ModeContent Mode = "content"
	// ModeFilepath derives the seed from the absolute file path, so the
	// same location keeps stable results even when the image changes.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a caller-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a non-deterministic seed that varies each run.
	ModeRandom Mode = "random"
)

// Config holds seed generation settings.
type Config struct {
	Mode  Mode   // seed mode
	Value *int64 // seed value, only consulted when Mode is ModeManual
}

// Calculate resolves the seed for one extraction run.
// img is required for ModeContent and imagePath for ModeFilepath.
func Calculate(img image.Image, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return FromContent(img)
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FromPath(imagePath)
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return Random(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FromContent generates a deterministic seed from the image pixels. The
// hash covers the dimensions and a grid sample of the pixels, which is
// enough to tell images apart without walking every pixel of a large one.
func FromContent(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}

// FromPath generates a deterministic seed from the absolute file path, so
// whatever image sits at that location extracts with the same seed. URLs
// hash as given.
func FromPath(imagePath string) (int64, error) {
	if imagePath == "" {
		return 0, fmt.Errorf("image path cannot be empty")
	}

	absPath := imagePath
	if !isURL(imagePath) {
		if resolved, err := filepath.Abs(imagePath); err == nil {
			absPath = resolved
		}
	}

	hasher := sha256.New()
	hasher.Write([]byte(absPath))
	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}

// Random generates a non-deterministic seed.
func Random() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// isURL checks whether a path is an HTTP or HTTPS URL.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns the seed modes a caller may request.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
