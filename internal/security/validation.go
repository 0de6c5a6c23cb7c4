// Package security provides input validation and resource-limit helpers for Pigment.
package security

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateHTTPURL validates a URL before a download that persists to disk.
// Only HTTPS URLs pointing at public hosts are accepted.
func ValidateHTTPURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	// Block localhost and private IPs to prevent SSRF.
	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateArchivePath validates a member path read from an archive.
// Member paths must be relative and must not climb out of the archive root.
func ValidateArchivePath(memberPath string) error {
	if memberPath == "" {
		return fmt.Errorf("empty archive member path")
	}

	if filepath.IsAbs(memberPath) {
		return fmt.Errorf("absolute paths in archives are not allowed")
	}

	if strings.Contains(memberPath, "..") {
		return fmt.Errorf("archive member path contains directory traversal: %s", memberPath)
	}

	return nil
}

// LimitedReader wraps an io.Reader and caps the total bytes that can be read.
// It guards against decompression bombs and oversized downloads.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader, failing once the cap is exhausted.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, fmt.Errorf("read limit exceeded")
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a LimitedReader that reads at most maxBytes bytes.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost reports whether a hostname is localhost or in a private range.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	if strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "169.254.") {
		return true
	}

	// RFC 1918 172.16.0.0/12.
	for octet := 16; octet <= 31; octet++ {
		if strings.HasPrefix(host, fmt.Sprintf("172.%d.", octet)) {
			return true
		}
	}

	// Link-local and unique-local IPv6.
	return strings.HasPrefix(host, "fe80:") ||
		strings.HasPrefix(host, "fc00:") ||
		strings.HasPrefix(host, "fd00:")
}
