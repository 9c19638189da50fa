package resource

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
)

// FileHandler fetches file:// URLs from the local filesystem.
type FileHandler struct{}

func (FileHandler) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "file" {
		return nil, "", ErrUnsupported
	}

	path, err := filePath(u)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, "", fmt.Errorf("resource: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := readCapped(f, ReadLimit)
	if err != nil {
		return nil, "", fmt.Errorf("resource: read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = sniffMIME(data)
	}
	if isSVG(mimeType, data) {
		return data, "image/svg+xml", ErrNeedsRasterization
	}
	return data, mimeType, nil
}

// filePath resolves a file:// URL to a local path, accepting an empty or
// localhost host (the common case) and rejecting anything else.
func filePath(u *url.URL) (string, error) {
	switch u.Hostname() {
	case "", "localhost":
	default:
		return "", fmt.Errorf("resource: cannot read from remote file host %q", u.Hostname())
	}
	path := u.Path
	if path == "" {
		return "", fmt.Errorf("resource: file URL %s has no path", u)
	}
	return filepath.FromSlash(path), nil
}
