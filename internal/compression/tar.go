package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/jmylchreest/pigment/internal/security"
	"github.com/ulikunitz/xz"
)

// readTarGz lists the files of a tar.gz archive.
func readTarGz(data []byte) (map[string][]byte, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	return readTar(tar.NewReader(gzr))
}

// readTarXz lists the files of a tar.xz archive.
func readTarXz(data []byte) (map[string][]byte, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	return readTar(tar.NewReader(xzr))
}

// readTarBz2 lists the files of a tar.bz2 archive.
func readTarBz2(data []byte) (map[string][]byte, error) {
	return readTar(tar.NewReader(bzip2.NewReader(bytes.NewReader(data))))
}

// readTar collects every regular file in a tar stream into memory.
// Member paths are validated against directory traversal and each
// member is read through a size cap.
func readTar(tr *tar.Reader) (map[string][]byte, error) {
	files := make(map[string][]byte)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		if err := security.ValidateArchivePath(header.Name); err != nil {
			return nil, fmt.Errorf("unsafe archive member: %w", err)
		}

		content, err := io.ReadAll(security.NewLimitedReader(tr, maxDecompressedBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read archive member %s: %w", header.Name, err)
		}
		files[header.Name] = content
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	}
	return files, nil
}
