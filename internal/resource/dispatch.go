package resource

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher tries each Handler in order until one does not return
// ErrUnsupported (spec.md §5 "Resource fetch interface"). It satisfies
// internal/image.Fetcher structurally.
type Dispatcher struct {
	handlers []Handler
}

// NewDispatcher builds a Dispatcher over handlers, tried in order.
func NewDispatcher(handlers ...Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// Default returns a Dispatcher with the file:// and http(s):// handlers
// spec.md §5 names.
func Default() *Dispatcher {
	return NewDispatcher(FileHandler{}, NewHTTPHandler())
}

func (d *Dispatcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	for _, h := range d.handlers {
		data, mimeType, err := h.Fetch(ctx, rawURL)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		return data, mimeType, err
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupported, rawURL)
}
