// Package compression expands compressed asset files and archives entirely in memory.
package compression

import (
	"fmt"
	"strings"
)

// maxDecompressedBytes caps how much any single file may expand to.
// This prevents decompression bombs in downloaded scaler bundles.
const maxDecompressedBytes = 100 * 1024 * 1024

var archiveSuffixes = []string{
	".tar.gz", ".tgz",
	".tar.xz", ".txz",
	".tar.bz2", ".tbz", ".tbz2",
	".zip",
}

// IsArchive reports whether a filename has a supported archive extension.
func IsArchive(filename string) bool {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}

// ReadArchive lists every regular file in an archive, keyed by member path.
// The format is chosen from the filename extension:
//   - Tar archives (.tar.gz, .tgz, .tar.xz, .txz, .tar.bz2, .tbz, .tbz2)
//   - Zip archives (.zip)
func ReadArchive(data []byte, filename string) (map[string][]byte, error) {
	switch {
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		return readTarGz(data)
	case strings.HasSuffix(filename, ".tar.xz"), strings.HasSuffix(filename, ".txz"):
		return readTarXz(data)
	case strings.HasSuffix(filename, ".tar.bz2"), strings.HasSuffix(filename, ".tbz"), strings.HasSuffix(filename, ".tbz2"):
		return readTarBz2(data)
	case strings.HasSuffix(filename, ".zip"):
		return readZip(data)
	}
	return nil, fmt.Errorf("unsupported archive format: %s", filename)
}

// Member finds a file in an archive listing by name. The name matches either
// a full member path or the trailing path component, so "scale.txt" also finds
// "bundle/scale.txt" in archives that nest their files under a directory.
// Ambiguous names match nothing.
func Member(files map[string][]byte, name string) ([]byte, bool) {
	if content, ok := files[name]; ok {
		return content, true
	}

	var matches [][]byte
	for path, content := range files {
		if strings.HasSuffix(path, "/"+name) {
			matches = append(matches, content)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return nil, false
}
