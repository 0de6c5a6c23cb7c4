package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/jmylchreest/pigment/internal/security"
)

// readZip collects every file in a zip archive into memory.
func readZip(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		if err := security.ValidateArchivePath(f.Name); err != nil {
			return nil, fmt.Errorf("unsafe archive member: %w", err)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive member %s: %w", f.Name, err)
		}

		content, readErr := io.ReadAll(security.NewLimitedReader(rc, maxDecompressedBytes))
		closeErr := rc.Close() // Close immediately instead of defer

		if readErr != nil {
			return nil, fmt.Errorf("failed to read archive member %s: %w", f.Name, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close archive member %s: %w", f.Name, closeErr)
		}
		files[f.Name] = content
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	}
	return files, nil
}
