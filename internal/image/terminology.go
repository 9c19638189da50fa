package image

import (
	"bytes"
	"context"
	goimage "image"
	"io"
	"strconv"
	"strings"

	"github.com/arinmd/termcat/internal/theme"
)

// Terminology writes the Terminology texture-fill protocol (spec.md §6):
// `ESC } ic # COLS;ROWS;URL NUL` followed by ROWS rows of `ESC } ib NUL
// ####…# ESC } ie NUL \n`. Terminology loads the image from the URL
// itself; this protocol only needs enough of the bytes to compute an
// aspect ratio, grounded directly on
// original_source/src/terminal/terminology.rs's write_inline_image, which
// falls back to half the available rows when dimensions can't be read.
type Terminology struct{}

func (Terminology) WriteInlineImage(ctx context.Context, w io.Writer, fetch Fetcher, rawURL string, size theme.TerminalSize) error {
	columns := size.Columns
	if columns < 1 {
		return ErrUnsupported
	}

	rows := size.Rows / 2
	if rows < 1 {
		rows = 1
	}
	if data, _, err := fetch.Fetch(ctx, rawURL); err == nil {
		if cfg, _, err := goimage.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 {
			rows = (cfg.Height * (columns / 2)) / cfg.Width
			if rows < 1 {
				rows = 1
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("\x1b}ic#")
	sb.WriteString(strconv.Itoa(columns))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(rows))
	sb.WriteByte(';')
	sb.WriteString(rawURL)
	sb.WriteByte(0)

	fill := strings.Repeat("#", columns)
	for i := 0; i < rows; i++ {
		sb.WriteString("\x1b}ib\x00")
		sb.WriteString(fill)
		sb.WriteString("\x1b}ie\x00\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
