package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/pigment/internal/security"
	"github.com/ulikunitz/xz"
)

// Decompress expands a compressed asset into memory based on its filename.
// Files without a recognised compression extension are returned unchanged.
func Decompress(data []byte, filename string) ([]byte, error) {
	switch {
	case strings.HasSuffix(filename, ".gz"):
		return decompressGz(data)
	case strings.HasSuffix(filename, ".xz"):
		return decompressXz(data)
	case strings.HasSuffix(filename, ".bz2"):
		return decompressBz2(data)
	}
	return data, nil
}

// decompressGz decompresses a single gzipped file.
func decompressGz(data []byte) ([]byte, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	out, err := io.ReadAll(security.NewLimitedReader(gzr, maxDecompressedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip data: %w", err)
	}
	return out, nil
}

// decompressXz decompresses a single xz-compressed file.
func decompressXz(data []byte) ([]byte, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	out, err := io.ReadAll(security.NewLimitedReader(xzr, maxDecompressedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress xz data: %w", err)
	}
	return out, nil
}

// decompressBz2 decompresses a single bzip2-compressed file.
func decompressBz2(data []byte) ([]byte, error) {
	bzr := bzip2.NewReader(bytes.NewReader(data))

	out, err := io.ReadAll(security.NewLimitedReader(bzr, maxDecompressedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress bzip2 data: %w", err)
	}
	return out, nil
}
