// Package image implements the three inline image protocols spec.md §6
// enumerates (Kitty, iTerm2, Terminology), each hand-rolled against the
// teacher's internal/image/terminal.go (Kitty chunking, rasterm iTerm2
// usage, golang.org/x/image scaling) and, for Terminology, against
// original_source/src/terminal/terminology.rs since the teacher never
// implemented that protocol.
package image

import (
	"context"
	"errors"
	"io"

	"github.com/arinmd/termcat/internal/theme"
)

// ErrUnsupported signals a protocol cannot service this request — missing
// pixel size for Kitty, a URL the protocol can't reach, and so on. The
// caller falls back to link or alt-text rendering (spec.md §4.1 "Images").
var ErrUnsupported = errors.New("image: protocol does not support this request")

// Fetcher resolves a URL to bytes and a MIME type. internal/resource.Dispatcher
// satisfies this interface structurally; the image package never imports
// internal/resource, keeping the dependency one-way (spec.md §1 "resource
// fetch interface" as an external collaborator).
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (data []byte, mimeType string, err error)
}

// Protocol is the single operation every inline image protocol implements
// (spec.md §6 write_inline_image).
type Protocol interface {
	WriteInlineImage(ctx context.Context, w io.Writer, fetch Fetcher, rawURL string, size theme.TerminalSize) error
}

// For returns the Protocol for a declared capability, or nil if the
// terminal has none.
func For(cap theme.ImageCapability) Protocol {
	switch cap {
	case theme.ImageKitty:
		return Kitty{}
	case theme.ImageITerm2:
		return ITerm2{}
	case theme.ImageTerminology:
		return Terminology{}
	default:
		return nil
	}
}
