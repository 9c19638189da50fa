package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arinmd/termcat/internal/highlight"
	"github.com/arinmd/termcat/internal/image"
	"github.com/arinmd/termcat/internal/mdevent"
	"github.com/arinmd/termcat/internal/termctl"
	"github.com/arinmd/termcat/internal/textwrap"
	"github.com/arinmd/termcat/internal/theme"
)

// Render folds events into w under settings/env, fetching inline image
// resources through fetch. It is the single public entry point of the
// Event Interpreter (spec.md §4.2).
func Render(ctx context.Context, w io.Writer, events []mdevent.Event, settings theme.Settings, env theme.Environment, fetch image.Fetcher) error {
	it := newInterpreter(&writer{
		ctx:      ctx,
		out:      w,
		emit:     termctl.New(settings.Capabilities),
		settings: settings,
		env:      env,
		fetch:    fetch,
	})
	for _, ev := range events {
		if err := it.step(ev); err != nil {
			return err
		}
	}
	return it.finish()
}

// finish requires the interpreter to have returned to TopLevel (every
// block properly closed) and flushes any remaining reference-list entries
// (spec.md §8 invariant 4).
func (it *interpreter) finish() error {
	if len(it.stack) != 1 || it.top().kind != frameTopLevel {
		return fmt.Errorf("render: unterminated block at end of document (depth %d)", len(it.stack))
	}
	return it.w.writeLinkRefs(it.data.takeRefs())
}

func (it *interpreter) step(ev mdevent.Event) error {
	// While inside a rendered image, every event except nested image
	// start/end is swallowed: alt text has no visual representation once
	// the image itself has been drawn (spec.md §4.1 "Images").
	if it.top().kind == frameRenderedImage {
		switch ev.Kind {
		case mdevent.KindImageStart:
			return it.descend(frame{kind: frameRenderedImage})
		case mdevent.KindImageEnd:
			it.pop()
			return nil
		default:
			return nil
		}
	}

	switch ev.Kind {
	case mdevent.KindParagraphStart:
		return it.startParagraph()
	case mdevent.KindParagraphEnd, mdevent.KindHeadingEnd:
		return it.endInlineBlock()
	case mdevent.KindHeadingStart:
		return it.startHeading(ev.Level)
	case mdevent.KindBlockQuoteStart:
		return it.startBlockQuote()
	case mdevent.KindBlockQuoteEnd, mdevent.KindListEnd:
		it.pop()
		return nil
	case mdevent.KindHTMLBlockEnd, mdevent.KindCodeBlockEnd:
		// Start and End arrive back-to-back with no frame pushed between
		// them (mdparse hands the whole block's text to Start at once);
		// nothing to close here.
		return nil
	case mdevent.KindRule:
		return it.rule()
	case mdevent.KindListStart:
		return it.startList(ev.Ordered, ev.OrderStart)
	case mdevent.KindItemStart:
		return it.startItem(ev.HasCheckbox, ev.Checked)
	case mdevent.KindItemEnd:
		return it.endItem()
	case mdevent.KindCodeBlockStart:
		return it.codeBlock(ev.Lang, ev.Text)
	case mdevent.KindHTMLBlockStart:
		return it.htmlBlock(ev.Text)
	case mdevent.KindText:
		return it.text(ev.Text)
	case mdevent.KindCode:
		return it.inlineCode(ev.Text)
	case mdevent.KindInlineHTML:
		return it.inlineHTML(ev.Text)
	case mdevent.KindSoftBreak:
		return it.softBreak()
	case mdevent.KindHardBreak:
		return it.hardBreak()
	case mdevent.KindEmphasisStart:
		return it.pushToggleItalic()
	case mdevent.KindStrongStart:
		return it.pushStyle(theme.Style.WithBold, true)
	case mdevent.KindStrikethroughStart:
		return it.pushStyle(theme.Style.WithStrike, true)
	case mdevent.KindEmphasisEnd, mdevent.KindStrongEnd, mdevent.KindStrikethroughEnd:
		it.pop()
		return nil
	case mdevent.KindLinkStart:
		return it.startLink(ev.LKind, ev.Dest, ev.Title)
	case mdevent.KindLinkEnd:
		return it.endLink()
	case mdevent.KindImageStart:
		return it.startImage(ev.Dest, ev.Title)
	case mdevent.KindImageEnd:
		return it.endImage()
	case mdevent.KindTableStart:
		return it.startTable()
	case mdevent.KindTableEnd:
		return it.endTable()
	case mdevent.KindTableHeadEnd:
		it.data.table.endHead()
		return nil
	case mdevent.KindTableRowEnd:
		it.data.table.endRow()
		return nil
	case mdevent.KindTableCellStart:
		if it.top().kind == frameTableBlock {
			it.data.table.startCell()
		}
		return nil
	case mdevent.KindTableCellEnd:
		return nil
	}
	return nil
}

// --- Paragraphs, headings -------------------------------------------------

func (it *interpreter) startParagraph() error {
	top := it.top()
	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		indent, style := blockIndentStyle(top)
		if err := it.enterBlock(frame{kind: frameInline, inline: inlineText, indent: indent, style: style}); err != nil {
			return err
		}
		return it.w.writeIndent(indent)
	case frameInline: // list item
		if top.itemState != itemStart {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
			if err := it.w.writeIndent(top.indent); err != nil {
				return err
			}
		}
		saved := *top
		saved.itemState = itemBlock
		it.replace(saved)
		return it.descend(frame{kind: frameInline, inline: inlineText, indent: top.indent, style: top.style})
	}
	return nil
}

// endInlineBlock closes a Paragraph or Heading: write a newline, reset the
// line cursor, and pop back to the enclosing block (spec.md §4.1).
func (it *interpreter) endInlineBlock() error {
	if err := it.w.writeRaw("\n"); err != nil {
		return err
	}
	it.data.currentLine = textwrap.CurrentLine{}
	it.pop()
	return nil
}

func (it *interpreter) startHeading(level int) error {
	top := it.top()
	prefix := strings.Repeat("┄", level)
	indent, style := blockIndentStyle(top)

	switch top.kind {
	case frameTopLevel:
		if err := it.w.writeLinkRefs(it.data.takeRefs()); err != nil {
			return err
		}
		if top.marginBefore {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		if err := it.w.writeMark(); err != nil {
			return err
		}
		top.marginBefore = true
	case frameStyledBlock:
		if top.marginBefore {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		if err := it.w.writeIndent(indent); err != nil {
			return err
		}
		top.marginBefore = true
	case frameInline: // list item
		if top.itemState != itemStart {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
			if err := it.w.writeIndent(indent); err != nil {
				return err
			}
		}
	}

	headingStyle := onTopOf(it.w.settings.Theme.Heading, style)
	if err := it.w.writeStyled(headingStyle, prefix); err != nil {
		return err
	}
	return it.descend(frame{kind: frameInline, inline: inlineBlock, indent: 0, style: headingStyle})
}

// --- Block quotes ----------------------------------------------------------

func (it *interpreter) startBlockQuote() error {
	top := it.top()
	quoteStyle := func(s theme.Style) theme.Style { return s.WithItalic(true) }

	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		indent, style := blockIndentStyle(top)
		return it.enterBlock(frame{kind: frameStyledBlock, indent: indent + 2, style: quoteStyle(style)})
	case frameInline: // list item
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		saved := *top
		saved.itemState = itemBlock
		it.replace(saved)
		return it.descend(frame{kind: frameStyledBlock, indent: top.indent + 2, style: quoteStyle(top.style)})
	}
	return nil
}

// --- Rules -------------------------------------------------------------

func (it *interpreter) rule() error {
	top := it.top()
	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		indent, _ := blockIndentStyle(top)
		if top.marginBefore {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		if top.kind == frameStyledBlock {
			if err := it.w.writeIndent(indent); err != nil {
				return err
			}
		}
		if err := it.w.writeRule(indent); err != nil {
			return err
		}
		top.marginBefore = true
	case frameInline: // list item
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		if err := it.w.writeIndent(top.indent); err != nil {
			return err
		}
		if err := it.w.writeRule(top.indent); err != nil {
			return err
		}
		top.itemState = itemBlock
	}
	return nil
}

// --- Lists ---------------------------------------------------------------

func (it *interpreter) startList(ordered bool, start int) error {
	top := it.top()
	kind := listUnordered
	if ordered {
		kind = listOrdered
	}
	listItem := func(indent int, style theme.Style) frame {
		return frame{kind: frameInline, inline: inlineListItem, listK: kind, orderNo: start, itemState: itemStart, indent: indent, style: style}
	}

	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		indent, style := blockIndentStyle(top)
		return it.enterBlock(listItem(indent, style))
	case frameInline: // nested list inside a list item
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		saved := *top
		saved.itemState = itemBlock
		it.replace(saved)
		return it.descend(listItem(top.indent, top.style))
	}
	return nil
}

func (it *interpreter) startItem(hasCheckbox, checked bool) error {
	top := it.top()
	if top.itemState == itemBlock {
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
	}
	if err := it.w.writeIndent(top.indent); err != nil {
		return err
	}

	indent := top.indent
	switch top.listK {
	case listUnordered:
		if err := it.w.writeRaw("• "); err != nil {
			return err
		}
		indent += 2
	case listOrdered:
		if err := it.w.writeRaw(fmt.Sprintf("%2d. ", top.orderNo)); err != nil {
			return err
		}
		indent += 4
	}

	saved := frame{kind: frameInline, inline: inlineListItem, listK: top.listK, orderNo: top.orderNo, itemState: itemStart, indent: indent, style: top.style}
	it.replace(saved)
	it.data.currentLine = textwrap.CurrentLine{}

	if hasCheckbox {
		marker := "☐"
		if checked {
			marker = "☒"
		}
		if err := it.w.writeStyled(top.style, marker); err != nil {
			return err
		}
		it.data.currentLine.Length += runeDisplayWidth(marker)
		it.data.currentLine.Trailing = " "
	}
	return nil
}

func (it *interpreter) endItem() error {
	top := it.top()
	if top.itemState != itemBlock {
		// The item's own inline text (not a nested block) needs its
		// closing newline here; a nested block already wrote its own.
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		it.data.currentLine = textwrap.CurrentLine{}
	}

	indent, orderNo, kind := top.indent, top.orderNo, top.listK
	switch kind {
	case listUnordered:
		indent -= 2
	case listOrdered:
		indent -= 4
		orderNo++
	}
	saved := *top
	saved.indent, saved.orderNo = indent, orderNo
	it.replace(saved)
	return nil
}

// --- Code blocks -----------------------------------------------------------

func (it *interpreter) codeBlock(lang, text string) error {
	top := it.top()
	indent, style := blockIndentStyle(top)

	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		if top.marginBefore {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		top.marginBefore = true
	case frameInline: // list item
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		top.itemState = itemBlock
	}

	if err := it.w.writeIndent(indent); err != nil {
		return err
	}
	if err := it.w.writeBorder(); err != nil {
		return err
	}
	if err := it.w.writeIndent(indent); err != nil {
		return err
	}

	if hl, ok := highlighterFor(it.w.settings.Capabilities, lang, it.w.settings.Syntax); ok {
		if err := it.writeHighlighted(hl, indent, text); err != nil {
			return err
		}
	} else {
		if err := it.writeLiteral(onTopOf(it.w.settings.Theme.Code, style), indent, text); err != nil {
			return err
		}
	}

	return it.w.writeBorder()
}

func (it *interpreter) writeLiteral(style theme.Style, indent int, text string) error {
	for _, line := range splitKeepNewline(text) {
		if err := it.w.writeStyled(style, line); err != nil {
			return err
		}
		if strings.HasSuffix(line, "\n") {
			if err := it.w.writeIndent(indent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (it *interpreter) writeHighlighted(hl *highlight.Highlighter, indent int, text string) error {
	lines := splitKeepNewline(text)
	for _, line := range lines {
		trimmed := strings.TrimSuffix(line, "\n")
		regions := hl.Line(trimmed)
		if err := it.w.emit.WriteAsANSI(it.w.out, regions); err != nil {
			return err
		}
		if strings.HasSuffix(line, "\n") {
			if err := it.w.writeIndent(indent); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitKeepNewline splits text into lines, each retaining its trailing
// newline (mirroring LinesWithEndings in the reference renderer), so a
// code block's final (unterminated) line doesn't trigger a spurious
// re-indent.
func splitKeepNewline(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// --- HTML blocks -------------------------------------------------------

func (it *interpreter) htmlBlock(text string) error {
	top := it.top()
	indent, style := blockIndentStyle(top)
	style = onTopOf(it.w.settings.Theme.HTML, style)

	firstLineFlush := false
	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		if top.marginBefore {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		top.marginBefore = true
	case frameInline: // list item
		firstLineFlush = top.itemState == itemStart
		if !firstLineFlush {
			if err := it.w.writeRaw("\n"); err != nil {
				return err
			}
		}
		top.itemState = itemBlock
	}

	for n, line := range splitKeepNewline(text) {
		lineIndent := indent
		if n == 0 && firstLineFlush {
			lineIndent = 0
		}
		if err := it.w.writeIndent(lineIndent); err != nil {
			return err
		}
		if err := it.w.writeStyled(style, line); err != nil {
			return err
		}
	}
	return nil
}

// --- Inline text -----------------------------------------------------------

func (it *interpreter) text(s string) error {
	top := it.top()

	if top.kind == frameTableBlock {
		it.data.table.pushFragment(s)
		return nil
	}

	if top.kind == frameInline && top.inline == inlineListItem && top.itemState == itemBlock {
		if err := it.w.writeIndent(top.indent); err != nil {
			return err
		}
		cur, err := it.w.wrap(top.style, top.indent, it.data.currentLine, s)
		if err != nil {
			return err
		}
		it.data.currentLine = cur
		saved := *top
		saved.itemState = itemText
		it.replace(saved)
		return nil
	}

	if top.kind == frameInline && top.inline == inlineBlock {
		// Headings never wrap.
		return it.w.writeStyled(top.style, s)
	}

	cur, err := it.w.wrap(top.style, top.indent, it.data.currentLine, s)
	if err != nil {
		return err
	}
	it.data.currentLine = cur
	return nil
}

func (it *interpreter) inlineCode(s string) error {
	top := it.top()
	if top.kind == frameTableBlock {
		it.data.table.pushFragment(s)
		return nil
	}
	style := onTopOf(it.w.settings.Theme.Code, top.style)
	cur, err := it.w.wrap(style, top.indent, it.data.currentLine, s)
	if err != nil {
		return err
	}
	it.data.currentLine = cur
	return nil
}

func (it *interpreter) inlineHTML(s string) error {
	top := it.top()
	style := onTopOf(it.w.settings.Theme.HTML, top.style)
	cur, err := it.w.wrap(style, top.indent, it.data.currentLine, s)
	if err != nil {
		return err
	}
	it.data.currentLine = cur
	return nil
}

func (it *interpreter) softBreak() error {
	it.data.currentLine.Trailing = " "
	return nil
}

func (it *interpreter) hardBreak() error {
	top := it.top()
	if err := it.w.writeRaw("\n"); err != nil {
		return err
	}
	if err := it.w.writeIndent(top.indent); err != nil {
		return err
	}
	it.data.currentLine = textwrap.CurrentLine{}
	return nil
}

// --- Inline markup (emphasis/strong/strikethrough) --------------------

func (it *interpreter) pushToggleItalic() error {
	top := *it.top()
	next := top
	next.style = top.style.WithItalic(!top.style.Italic)
	return it.descend(next)
}

func (it *interpreter) pushStyle(with func(theme.Style, bool) theme.Style, v bool) error {
	top := *it.top()
	next := top
	next.style = with(top.style, v)
	return it.descend(next)
}

// --- Links -----------------------------------------------------------------

func (it *interpreter) startLink(kind mdevent.LinkKind, dest, title string) error {
	top := *it.top()

	var resolvedURL string
	var ok bool
	if it.w.settings.Capabilities.Style == theme.StyleAnsi {
		d := dest
		if kind == mdevent.LinkEmail {
			d = "mailto:" + dest
		}
		resolvedURL, ok = resolveReference(it.w.env, d)
	}

	if ok {
		if it.data.currentLine.Trailing != "" {
			if err := it.w.writeRaw(it.data.currentLine.Trailing); err != nil {
				return err
			}
			it.data.currentLine.Length++
			it.data.currentLine.Trailing = ""
		}
		if err := it.w.emit.SetLinkURL(it.w.out, resolvedURL, it.w.env.Hostname); err != nil {
			return err
		}
		return it.descend(frame{kind: frameInline, inline: inlineLink, indent: top.indent, style: onTopOf(it.w.settings.Theme.Link, top.style)})
	}

	it.data.pushPendingLink(dest, title, kind)
	return it.descend(frame{kind: frameInline, inline: inlineText, indent: top.indent, style: onTopOf(it.w.settings.Theme.Link, top.style)})
}

func (it *interpreter) endLink() error {
	top := it.top()
	if top.inline == inlineLink {
		if err := it.w.emit.ClearLinkURL(it.w.out); err != nil {
			return err
		}
		it.pop()
		return nil
	}

	link := it.data.popPendingLink()
	if link.kind == mdevent.LinkAutolink || link.kind == mdevent.LinkEmail {
		it.pop()
		return nil
	}
	index := it.data.addLinkReference(link.dest, link.title)
	if err := it.w.writeStyled(top.style, fmt.Sprintf("[%d]", index)); err != nil {
		return err
	}
	it.pop()
	return nil
}

// --- Images ------------------------------------------------------------

func (it *interpreter) startImage(dest, title string) error {
	cur := *it.top()
	resolvedURL, ok := resolveReference(it.w.env, dest)

	if ok && it.w.settings.Capabilities.Image != theme.ImageNone {
		if proto := image.For(it.w.settings.Capabilities.Image); proto != nil {
			err := proto.WriteInlineImage(it.w.ctx, it.w.out, it.w.fetch, resolvedURL, it.w.settings.Size)
			if err == nil {
				return it.descend(frame{kind: frameRenderedImage})
			}
			// Protocol declined or failed: log it and fall through to a
			// text/link fallback rather than aborting the whole render.
			slog.Warn("render: inline image fallback", "url", resolvedURL, "err", err)
		}
	}

	if ok && it.w.settings.Capabilities.Image == theme.ImageNone && cur.inline != inlineLink && it.w.settings.Capabilities.Style == theme.StyleAnsi {
		if err := it.w.emit.SetLinkURL(it.w.out, resolvedURL, it.w.env.Hostname); err != nil {
			return err
		}
		return it.descend(frame{kind: frameInline, inline: inlineLink, indent: cur.indent, style: onTopOf(it.w.settings.Theme.ImageLink, cur.style)})
	}

	style := onTopOf(it.w.settings.Theme.ImageLink, cur.style)
	if cur.inline == inlineLink {
		style = cur.style
	}
	it.data.pushPendingLink(dest, title, mdevent.LinkInline)
	return it.descend(frame{kind: frameInline, inline: inlineText, indent: cur.indent, style: style})
}

func (it *interpreter) endImage() error {
	top := it.top()
	if top.inline == inlineLink {
		if err := it.w.emit.ClearLinkURL(it.w.out); err != nil {
			return err
		}
		it.pop()
		return nil
	}

	link := it.data.popPendingLink()
	index := it.data.addLinkReference(link.dest, link.title)
	style := onTopOf(it.w.settings.Theme.ImageLink, top.style)
	if err := it.w.writeStyled(style, fmt.Sprintf("[%d]", index)); err != nil {
		return err
	}
	it.pop()
	return nil
}

// --- Tables ------------------------------------------------------------

func (it *interpreter) startTable() error {
	top := it.top()
	switch top.kind {
	case frameTopLevel, frameStyledBlock:
		return it.enterBlock(frame{kind: frameTableBlock})
	case frameInline: // list item
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
		top.itemState = itemBlock
		return it.descend(frame{kind: frameTableBlock})
	}
	return it.descend(frame{kind: frameTableBlock})
}

func (it *interpreter) endTable() error {
	if err := writeTable(it.w.out, it.w.emit, it.w.settings, it.data.table); err != nil {
		return err
	}
	it.data.table.reset()
	it.pop()
	return nil
}

// --- shared helpers ------------------------------------------------------

// blockIndentStyle reads the indent/style a block should inherit from its
// enclosing frame: zero/default at top level, the frame's own values
// inside a StyledBlock or list item.
func blockIndentStyle(f *frame) (int, theme.Style) {
	if f.kind == frameTopLevel {
		return 0, theme.Style{}
	}
	return f.indent, f.style
}

func runeDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
