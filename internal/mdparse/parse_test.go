package mdparse

import (
	"testing"

	"github.com/arinmd/termcat/internal/mdevent"
)

func kinds(events []mdevent.Event) []mdevent.Kind {
	out := make([]mdevent.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []mdevent.Event, want []mdevent.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d events %v, want %d events %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("event[%d] = %v, want %v (full: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestParseSimpleParagraph(t *testing.T) {
	events, err := Parse([]byte("hello world\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertKinds(t, events, []mdevent.Kind{
		mdevent.KindParagraphStart,
		mdevent.KindText,
		mdevent.KindParagraphEnd,
	})
	if events[1].Text != "hello world" {
		t.Fatalf("text = %q, want %q", events[1].Text, "hello world")
	}
}

func TestParseHeadingLevel(t *testing.T) {
	events, err := Parse([]byte("## Title\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertKinds(t, events, []mdevent.Kind{
		mdevent.KindHeadingStart,
		mdevent.KindText,
		mdevent.KindHeadingEnd,
	})
	if events[0].Level != 2 {
		t.Fatalf("Level = %d, want 2", events[0].Level)
	}
}

func TestParseFencedCodeBlockCapturesLanguageAndText(t *testing.T) {
	events, err := Parse([]byte("```go\nfunc f() {}\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertKinds(t, events, []mdevent.Kind{mdevent.KindCodeBlockStart, mdevent.KindCodeBlockEnd})
	if events[0].Lang != "go" {
		t.Fatalf("Lang = %q, want %q", events[0].Lang, "go")
	}
	if events[0].Text != "func f() {}\n" {
		t.Fatalf("Text = %q, want %q", events[0].Text, "func f() {}\n")
	}
}

func TestParseTaskListItemChecksCheckbox(t *testing.T) {
	events, err := Parse([]byte("- [x] done\n- [ ] todo\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var starts []mdevent.Event
	for _, e := range events {
		if e.Kind == mdevent.KindItemStart {
			starts = append(starts, e)
		}
	}
	if len(starts) != 2 {
		t.Fatalf("got %d item starts, want 2", len(starts))
	}
	if !starts[0].HasCheckbox || !starts[0].Checked {
		t.Fatalf("first item = %+v, want checked checkbox", starts[0])
	}
	if !starts[1].HasCheckbox || starts[1].Checked {
		t.Fatalf("second item = %+v, want unchecked checkbox", starts[1])
	}
}

func TestParseLinkDestination(t *testing.T) {
	events, err := Parse([]byte("[text](https://example.com \"title\")\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var link *mdevent.Event
	for i := range events {
		if events[i].Kind == mdevent.KindLinkStart {
			link = &events[i]
		}
	}
	if link == nil {
		t.Fatalf("no KindLinkStart event in %v", kinds(events))
	}
	if link.Dest != "https://example.com" || link.Title != "title" {
		t.Fatalf("link = %+v, want dest/title set", *link)
	}
}

func TestParseTableProducesHeadAndRowEvents(t *testing.T) {
	src := "| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	events, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hasHeadEnd, hasRowEnd, hasCell := false, false, false
	for _, e := range events {
		switch e.Kind {
		case mdevent.KindTableHeadEnd:
			hasHeadEnd = true
		case mdevent.KindTableRowEnd:
			hasRowEnd = true
		case mdevent.KindTableCellStart:
			hasCell = true
		}
	}
	if !hasHeadEnd || !hasRowEnd || !hasCell {
		t.Fatalf("table events missing head/row/cell markers: %v", kinds(events))
	}
}

func TestParseStrongAndEmphasisNesting(t *testing.T) {
	events, err := Parse([]byte("**bold** and *italic*\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertKinds(t, events, []mdevent.Kind{
		mdevent.KindParagraphStart,
		mdevent.KindStrongStart,
		mdevent.KindText,
		mdevent.KindStrongEnd,
		mdevent.KindText,
		mdevent.KindEmphasisStart,
		mdevent.KindText,
		mdevent.KindEmphasisEnd,
		mdevent.KindParagraphEnd,
	})
}

func TestParseThematicBreak(t *testing.T) {
	events, err := Parse([]byte("a\n\n---\n\nb\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	found := false
	for _, e := range events {
		if e.Kind == mdevent.KindRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("no KindRule in %v", kinds(events))
	}
}
