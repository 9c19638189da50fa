package resource

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// HTTPHandler fetches http:// and https:// URLs with the timeouts spec.md
// §5 names: 1s to connect, 1s total. No retries.
type HTTPHandler struct {
	Client *http.Client
}

// NewHTTPHandler builds an HTTPHandler with spec.md §5's timeouts.
func NewHTTPHandler() *HTTPHandler {
	dialer := &net.Dialer{Timeout: time.Second}
	return &HTTPHandler{
		Client: &http.Client{
			Timeout: time.Second,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
	}
}

func (h *HTTPHandler) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", ErrUnsupported
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("resource: build request for %s: %w", rawURL, err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("resource: GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("resource: GET %s: status %d", rawURL, resp.StatusCode)
	}

	if resp.ContentLength > ReadLimit {
		return nil, "", fmt.Errorf("%w: %s declares %d bytes", ErrTooLarge, rawURL, resp.ContentLength)
	}

	data, err := readCapped(resp.Body, ReadLimit)
	if err != nil {
		return nil, "", fmt.Errorf("resource: read %s: %w", rawURL, err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = sniffMIME(data)
	}
	if isSVG(mimeType, data) {
		return data, "image/svg+xml", ErrNeedsRasterization
	}
	return data, mimeType, nil
}
