// Package highlight tokenizes fenced code block lines with chroma,
// grounded directly on the teacher's internal/ui/highlight.go (which
// tokenizes diff lines the same way). The rendering core never talks to
// chroma directly — it consumes the Region slices this package produces.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Region is one styled run of highlighted text. Foreground is a Solarized
// palette color; the Output Emitter folds it to an ANSI code (spec.md
// §4.4). An unset Foreground means "no color" (base text).
type Region struct {
	Foreground  string // lowercase hex "#rrggbb", or "" for no color
	Bold        bool
	Italic      bool
	Underline   bool
	Text        string
}

// Highlighter tokenizes lines of one fenced code block's language.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// New returns a Highlighter for lang, or (nil, false) if lang does not
// resolve to a known lexer — the caller then falls back to a LiteralBlock
// frame per spec.md §4.1.
func New(lang, chromaStyleName string) (*Highlighter, bool) {
	if lang == "" {
		return nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(chromaStyleName)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{lexer: lexer, style: style}, true
}

// Line tokenizes one line of source (without its trailing newline) into
// styled regions, in order.
func (h *Highlighter) Line(line string) []Region {
	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return []Region{{Text: line}}
	}

	var regions []Region
	for token := iterator(); token != chroma.EOF; token = iterator() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}
		entry := h.style.Get(token.Type)
		r := Region{Text: value}
		if entry.Colour.IsSet() {
			r.Foreground = entry.Colour.String()
		}
		r.Bold = entry.Bold == chroma.Yes
		r.Italic = entry.Italic == chroma.Yes
		r.Underline = entry.Underline == chroma.Yes
		regions = append(regions, r)
	}
	return regions
}
