// Package mdparse adapts goldmark's CommonMark AST into the linear
// mdevent.Event stream the rendering core consumes. It is a separate
// package from internal/render by design: the core only ever imports
// internal/mdevent, never goldmark, matching spec.md §1's framing of the
// Markdown parser as an external collaborator. Grounded on the teacher's
// internal/serve/telegram_markdown.go, the one place in the teacher that
// already depends on goldmark.
package mdparse

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/arinmd/termcat/internal/mdevent"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
)

// Parse walks source's CommonMark AST and returns the equivalent event
// stream (spec.md §3 "Event").
func Parse(source []byte) ([]mdevent.Event, error) {
	doc := markdown.Parser().Parse(text.NewReader(source))

	p := &parser{source: source}
	err := ast.Walk(doc, p.visit)
	if err != nil {
		return nil, err
	}
	return p.events, nil
}

type parser struct {
	source []byte
	events []mdevent.Event
}

func (p *parser) emit(e mdevent.Event) { p.events = append(p.events, e) }

func (p *parser) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Document:
		// no event: the document boundary is implicit.
	case *ast.Paragraph:
		p.emit(mdevent.Event{Kind: kindPair(mdevent.KindParagraphStart, mdevent.KindParagraphEnd, entering)})
	case *ast.TextBlock:
		// TextBlock wraps a list item's inline content when the item has
		// no surrounding blank lines; it carries no visible markup of its
		// own, so it produces no event.
	case *ast.Heading:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindHeadingStart, Level: n.Level})
		} else {
			p.emit(mdevent.Event{Kind: mdevent.KindHeadingEnd})
		}
	case *ast.Blockquote:
		p.emit(mdevent.Event{Kind: kindPair(mdevent.KindBlockQuoteStart, mdevent.KindBlockQuoteEnd, entering)})
	case *ast.List:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindListStart, Ordered: n.IsOrdered(), OrderStart: n.Start})
		} else {
			p.emit(mdevent.Event{Kind: mdevent.KindListEnd})
		}
	case *ast.ListItem:
		if entering {
			hasCheckbox, checked := taskCheckbox(n)
			p.emit(mdevent.Event{Kind: mdevent.KindItemStart, HasCheckbox: hasCheckbox, Checked: checked})
		} else {
			p.emit(mdevent.Event{Kind: mdevent.KindItemEnd})
		}
	case *ast.FencedCodeBlock:
		if entering {
			lang := ""
			if seg := n.Language(p.source); seg != nil {
				lang = string(seg)
			}
			p.emit(mdevent.Event{Kind: mdevent.KindCodeBlockStart, Lang: lang, Text: codeBlockText(n.BaseBlock, p.source)})
			p.emit(mdevent.Event{Kind: mdevent.KindCodeBlockEnd})
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindCodeBlockStart, Text: codeBlockText(n.BaseBlock, p.source)})
			p.emit(mdevent.Event{Kind: mdevent.KindCodeBlockEnd})
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindHTMLBlockStart, Text: htmlBlockText(n, p.source)})
			p.emit(mdevent.Event{Kind: mdevent.KindHTMLBlockEnd})
		}
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		p.emit(mdevent.Event{Kind: mdevent.KindRule})
	case *ast.Text:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindText, Text: string(n.Segment.Value(p.source))})
			if n.HardLineBreak() {
				p.emit(mdevent.Event{Kind: mdevent.KindHardBreak})
			} else if n.SoftLineBreak() {
				p.emit(mdevent.Event{Kind: mdevent.KindSoftBreak})
			}
		}
	case *ast.String:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindText, Text: string(n.Value)})
		}
	case *ast.CodeSpan:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindCode, Text: codeSpanText(n, p.source)})
		}
		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindInlineHTML, Text: rawHTMLText(n, p.source)})
		}
	case *ast.AutoLink:
		if entering {
			kind := mdevent.LinkAutolink
			if n.AutoLinkType == ast.AutoLinkEmail {
				kind = mdevent.LinkEmail
			}
			dest := string(n.URL(p.source))
			p.emit(mdevent.Event{Kind: mdevent.KindLinkStart, Dest: dest, LKind: kind})
			p.emit(mdevent.Event{Kind: mdevent.KindText, Text: string(n.Label(p.source))})
			p.emit(mdevent.Event{Kind: mdevent.KindLinkEnd})
		}
		return ast.WalkSkipChildren, nil
	case *ast.Link:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindLinkStart, Dest: string(n.Destination), Title: string(n.Title), LKind: mdevent.LinkInline})
		} else {
			p.emit(mdevent.Event{Kind: mdevent.KindLinkEnd})
		}
	case *ast.Image:
		if entering {
			p.emit(mdevent.Event{Kind: mdevent.KindImageStart, Dest: string(n.Destination), Title: string(n.Title), LKind: mdevent.LinkInline})
		} else {
			p.emit(mdevent.Event{Kind: mdevent.KindImageEnd})
		}
	case *ast.Emphasis:
		if n.Level >= 2 {
			p.emit(mdevent.Event{Kind: kindPair(mdevent.KindStrongStart, mdevent.KindStrongEnd, entering)})
		} else {
			p.emit(mdevent.Event{Kind: kindPair(mdevent.KindEmphasisStart, mdevent.KindEmphasisEnd, entering)})
		}
	case *extast.Strikethrough:
		p.emit(mdevent.Event{Kind: kindPair(mdevent.KindStrikethroughStart, mdevent.KindStrikethroughEnd, entering)})
	case *extast.Table:
		p.emit(mdevent.Event{Kind: kindPair(mdevent.KindTableStart, mdevent.KindTableEnd, entering)})
	case *extast.TableHeader:
		if !entering {
			p.emit(mdevent.Event{Kind: mdevent.KindTableHeadEnd})
		}
	case *extast.TableRow:
		if !entering {
			p.emit(mdevent.Event{Kind: mdevent.KindTableRowEnd})
		}
	case *extast.TableCell:
		p.emit(mdevent.Event{Kind: kindPair(mdevent.KindTableCellStart, mdevent.KindTableCellEnd, entering)})
	}
	return ast.WalkContinue, nil
}

func kindPair(start, end mdevent.Kind, entering bool) mdevent.Kind {
	if entering {
		return start
	}
	return end
}

func taskCheckbox(item *ast.ListItem) (hasCheckbox, checked bool) {
	child := item.FirstChild()
	if child == nil {
		return false, false
	}
	grandchild := child.FirstChild()
	box, ok := grandchild.(*extast.TaskCheckBox)
	if !ok {
		return false, false
	}
	return true, box.IsChecked
}

func codeBlockText(b ast.BaseBlock, source []byte) string {
	var buf bytes.Buffer
	lines := b.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		buf.Write(lines.At(i).Value(source))
	}
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(source))
	}
	return buf.String()
}

func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

func rawHTMLText(n *ast.RawHTML, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		buf.Write(n.Segments.At(i).Value(source))
	}
	return buf.String()
}
