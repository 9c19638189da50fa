package termctl

import (
	"strings"
	"testing"

	"github.com/arinmd/termcat/internal/highlight"
	"github.com/arinmd/termcat/internal/theme"
)

func TestWriteStyledNoColorCapabilityIsPlain(t *testing.T) {
	e := New(theme.Capabilities{})
	var b strings.Builder
	if err := e.WriteStyled(&b, theme.Style{Foreground: "#ff0000", HasColor: true, Bold: true}, "hi"); err != nil {
		t.Fatalf("WriteStyled: %v", err)
	}
	if b.String() != "hi" {
		t.Fatalf("WriteStyled = %q, want plain %q", b.String(), "hi")
	}
}

func TestWriteStyledEmitsSGR(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	if err := e.WriteStyled(&b, theme.Style{Foreground: "#ff0000", HasColor: true, Bold: true}, "hi"); err != nil {
		t.Fatalf("WriteStyled: %v", err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "\x1b[38;2;255;0;0;1m") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("WriteStyled = %q, want SGR-wrapped", got)
	}
	if !strings.Contains(got, "hi") {
		t.Fatalf("WriteStyled = %q, want to contain text", got)
	}
}

func TestWriteStyledEmptyTextNoop(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	if err := e.WriteStyled(&b, theme.Style{Bold: true}, ""); err != nil {
		t.Fatalf("WriteStyled: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("WriteStyled(empty) = %q, want empty", b.String())
	}
}

func TestWriteMarkRequiresITerm2Capability(t *testing.T) {
	var b strings.Builder
	e := New(theme.Capabilities{})
	if err := e.WriteMark(&b); err != nil {
		t.Fatalf("WriteMark: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("WriteMark without capability wrote %q, want nothing", b.String())
	}

	b.Reset()
	e = New(theme.Capabilities{Mark: theme.MarkITerm2})
	if err := e.WriteMark(&b); err != nil {
		t.Fatalf("WriteMark: %v", err)
	}
	if !strings.Contains(b.String(), "SetMark") {
		t.Fatalf("WriteMark = %q, want SetMark OSC", b.String())
	}
}

func TestRewriteFileHostLoopback(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"empty host", "file:///tmp/a.md", "file://myhost/tmp/a.md"},
		{"localhost", "file://localhost/tmp/a.md", "file://myhost/tmp/a.md"},
		{"loopback ip", "file://127.0.0.1/tmp/a.md", "file://myhost/tmp/a.md"},
		{"remote host unchanged", "file://otherhost/tmp/a.md", "file://otherhost/tmp/a.md"},
		{"non-file scheme unchanged", "https://example.com/a", "https://example.com/a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RewriteFileHost(tc.url, "myhost"); got != tc.want {
				t.Fatalf("RewriteFileHost(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestWriteAsANSIKnownColorFoldsToNamedANSI(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	regions := []highlight.Region{{Text: "x", Foreground: "#dc322f"}}
	if err := e.WriteAsANSI(&b, regions); err != nil {
		t.Fatalf("WriteAsANSI: %v", err)
	}
	if !strings.Contains(b.String(), "\x1b[31m") {
		t.Fatalf("WriteAsANSI = %q, want red SGR 31", b.String())
	}
}

func TestWriteAsANSIBaseRampFoldsToDefaultForeground(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	regions := []highlight.Region{{Text: "x", Foreground: "#002b36"}}
	if err := e.WriteAsANSI(&b, regions); err != nil {
		t.Fatalf("WriteAsANSI: %v", err)
	}
	if b.String() != "x" {
		t.Fatalf("WriteAsANSI(base ramp) = %q, want plain text (no color code)", b.String())
	}
}

func TestWriteAsANSIUnknownColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("WriteAsANSI with unrecognized color did not panic")
		}
	}()
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	_ = e.WriteAsANSI(&b, []highlight.Region{{Text: "x", Foreground: "#123456"}})
}

func TestWriteLinkRefsEmptyIsNoop(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	if err := e.WriteLinkRefs(&b, nil, theme.Style{}, "host", theme.Capabilities{}); err != nil {
		t.Fatalf("WriteLinkRefs: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("WriteLinkRefs(nil) = %q, want empty", b.String())
	}
}

func TestWriteLinkRefsWrapsTargetInOSC8(t *testing.T) {
	e := New(theme.Capabilities{Style: theme.StyleAnsi})
	var b strings.Builder
	refs := []LinkReferenceDefinition{{Index: 1, URL: "https://example.com", Title: "Example"}}
	if err := e.WriteLinkRefs(&b, refs, theme.Style{}, "host", theme.Capabilities{Style: theme.StyleAnsi}); err != nil {
		t.Fatalf("WriteLinkRefs: %v", err)
	}
	got := b.String()
	if !strings.Contains(got, "[1]: ") || !strings.Contains(got, "\x1b]8;;https://example.com\x1b\\") || !strings.Contains(got, "Example") {
		t.Fatalf("WriteLinkRefs = %q, want index, OSC8-wrapped target and title", got)
	}
}
