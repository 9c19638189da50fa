package image

import (
	"context"
	"io"

	"github.com/BourgeoisBear/rasterm"

	"github.com/arinmd/termcat/internal/theme"
)

// ITerm2 writes the iTerm2 inline image OSC 1337 (spec.md §6): `ESC ]
// 1337;File=name=<b64>;inline=1: <b64> ESC \`, delegated to rasterm the
// way the teacher's RenderImageToString does for CapITerm.
type ITerm2 struct{}

func (ITerm2) WriteInlineImage(ctx context.Context, w io.Writer, fetch Fetcher, rawURL string, size theme.TerminalSize) error {
	data, _, err := fetch.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	img, err := decodeRaster(data)
	if err != nil {
		return err
	}
	if size.Pixels != nil {
		img = scaleToWidth(img, size.Pixels.Width)
	}
	return rasterm.ItermWriteImage(w, img)
}
