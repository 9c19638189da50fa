package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/arinmd/termcat/internal/theme"
)

const kittyChunkSize = 4096

// Kitty writes the Kitty graphics protocol APC sequence (spec.md §6):
// `ESC _ G a=T,t=d,f=100,m=<0|1> ; <b64-chunk> ESC \`, repeated in
// 4096-byte base64 chunks, grounded on the teacher's
// kittyUploadWithPlaceholders (internal/image/terminal.go) minus the
// Unicode-placeholder bookkeeping that a scrolling TUI needs and a
// one-shot renderer does not.
type Kitty struct{}

func (Kitty) WriteInlineImage(ctx context.Context, w io.Writer, fetch Fetcher, rawURL string, size theme.TerminalSize) error {
	// Kitty sizing requires the terminal's pixel dimensions; without them
	// the placement can't be scaled and rendering falls back (spec.md §6
	// "Terminal size").
	if size.Pixels == nil {
		return ErrUnsupported
	}

	data, _, err := fetch.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	img, err := decodeRaster(data)
	if err != nil {
		return err
	}
	img = scaleToWidth(img, size.Pixels.Width)

	png, err := encodePNG(img)
	if err != nil {
		return err
	}
	return writeKittyChunks(w, png)
}

func writeKittyChunks(w io.Writer, payload []byte) error {
	b64 := base64.StdEncoding.EncodeToString(payload)
	for i := 0; i < len(b64); i += kittyChunkSize {
		end := i + kittyChunkSize
		more := 1
		if end >= len(b64) {
			end = len(b64)
			more = 0
		}
		chunk := b64[i:end]

		var err error
		if i == 0 {
			_, err = fmt.Fprintf(w, "\x1b_Ga=T,t=d,f=100,m=%d;%s\x1b\\", more, chunk)
		} else {
			_, err = fmt.Fprintf(w, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
