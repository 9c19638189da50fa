package render

import (
	"io"

	"github.com/arinmd/termcat/internal/termctl"
	"github.com/arinmd/termcat/internal/theme"
)

// tableAccum collects a table's cells as the Event Interpreter walks
// through TableCell/TableRow/TableHead events, mirroring the teacher's
// pattern of accumulating a block's content before rendering it in one
// shot (internal/ui/markdown.go renders a whole response, not
// token-by-token).
type tableAccum struct {
	header []string
	rows   [][]string
	cur    []string
}

func (t *tableAccum) startCell() {
	t.cur = append(t.cur, "")
}

func (t *tableAccum) pushFragment(text string) {
	if len(t.cur) == 0 {
		t.cur = append(t.cur, "")
	}
	t.cur[len(t.cur)-1] += text
}

func (t *tableAccum) endHead() {
	t.header = t.cur
	t.cur = nil
}

func (t *tableAccum) endRow() {
	t.rows = append(t.rows, t.cur)
	t.cur = nil
}

func (t *tableAccum) reset() {
	*t = tableAccum{}
}

// writeTable renders the accumulated table as a plain pipe-delimited grid
// with a single separator rule after the header row. No column is aligned
// and no cell is silently dropped, matching the table open question's
// decision to keep the original's minimalism rather than invent a layout
// the source renderer never specified.
func writeTable(out io.Writer, emit *termctl.Emitter, settings theme.Settings, t tableAccum) error {
	writeRow := func(cells []string, style theme.Style) error {
		if _, err := io.WriteString(out, "| "); err != nil {
			return err
		}
		for i, c := range cells {
			if i > 0 {
				if _, err := io.WriteString(out, " | "); err != nil {
					return err
				}
			}
			if err := emit.WriteStyled(out, style, c); err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, " |\n")
		return err
	}

	if len(t.header) > 0 {
		if err := writeRow(t.header, settings.Theme.Heading); err != nil {
			return err
		}
		sep := make([]string, len(t.header))
		for i := range sep {
			sep[i] = "---"
		}
		if err := writeRow(sep, theme.Style{}); err != nil {
			return err
		}
	}
	for _, row := range t.rows {
		if err := writeRow(row, settings.Theme.Text); err != nil {
			return err
		}
	}
	return nil
}
