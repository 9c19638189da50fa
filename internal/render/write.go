package render

import (
	"context"
	"io"
	"net/url"

	"github.com/arinmd/termcat/internal/highlight"
	"github.com/arinmd/termcat/internal/image"
	"github.com/arinmd/termcat/internal/termctl"
	"github.com/arinmd/termcat/internal/textwrap"
	"github.com/arinmd/termcat/internal/theme"
)

// writer bundles the Output Emitter with the immutable inputs a rendering
// run needs to reach (settings, environment, image fetcher, context for
// cancellation during resource fetches).
type writer struct {
	ctx      context.Context
	out      io.Writer
	emit     *termctl.Emitter
	settings theme.Settings
	env      theme.Environment
	fetch    image.Fetcher
}

func (w *writer) writeRaw(s string) error {
	_, err := io.WriteString(w.out, s)
	return err
}

func (w *writer) writeIndent(n int) error {
	return w.emit.WriteIndent(w.out, n)
}

func (w *writer) writeStyled(style theme.Style, text string) error {
	return w.emit.WriteStyled(w.out, style, text)
}

// wrap feeds text through the Line Composer, writing it at indent under
// style and returning the updated line cursor (spec.md §4.3).
func (w *writer) wrap(style theme.Style, indent int, cur textwrap.CurrentLine, text string) (textwrap.CurrentLine, error) {
	return textwrap.Compose(w.out, w.emit, style, w.settings.Size.Columns, indent, cur, text)
}

func (w *writer) writeMark() error {
	return w.emit.WriteMark(w.out)
}

func (w *writer) writeRule(indent int) error {
	return w.emit.WriteRule(w.out, w.settings.Size.Columns-indent, w.settings.Theme.Rule)
}

func (w *writer) writeBorder() error {
	return w.emit.WriteBorder(w.out, w.settings.Size.Columns, w.settings.Theme.Border)
}

func (w *writer) writeLinkRefs(refs []termctl.LinkReferenceDefinition) error {
	return w.emit.WriteLinkRefs(w.out, refs, w.settings.Theme.Link, w.env.Hostname, w.settings.Capabilities)
}

// onTopOf layers overlay on top of base: overlay's color replaces base's
// when present, and effect bits combine (spec.md §4.1 "nested inline
// styles combine rather than replace").
func onTopOf(overlay, base theme.Style) theme.Style {
	result := base
	if overlay.HasColor {
		result.Foreground = overlay.Foreground
		result.HasColor = true
	}
	result.Bold = result.Bold || overlay.Bold
	result.Italic = result.Italic || overlay.Italic
	result.Underline = result.Underline || overlay.Underline
	result.Strike = result.Strike || overlay.Strike
	return result
}

// resolveReference resolves dest against the environment's base URL,
// reporting whether it could be resolved to something worth turning into
// a hyperlink (spec.md §6 "Reference resolution").
func resolveReference(env theme.Environment, dest string) (string, bool) {
	if dest == "" {
		return "", false
	}
	if u, err := url.Parse(dest); err == nil && u.IsAbs() {
		return dest, true
	}
	if env.BaseURL == "" {
		return "", false
	}
	base, err := url.Parse(env.BaseURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(dest)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// highlighterFor returns a code-block highlighter only when both the
// terminal's style capability and the fence language permit it (spec.md
// §4.1 "Code blocks": highlighting requires Ansi style support).
func highlighterFor(caps theme.Capabilities, lang string, syntax theme.SyntaxDB) (*highlight.Highlighter, bool) {
	if caps.Style != theme.StyleAnsi {
		return nil, false
	}
	return highlight.New(lang, syntax.ChromaStyle)
}
