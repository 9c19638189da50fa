package render

import (
	"testing"

	"github.com/arinmd/termcat/internal/theme"
)

func TestOnTopOfOverlayColorWins(t *testing.T) {
	base := theme.Style{Foreground: "#111111", HasColor: true, Bold: true}
	overlay := theme.Style{Foreground: "#222222", HasColor: true, Italic: true}
	got := onTopOf(overlay, base)
	if got.Foreground != "#222222" {
		t.Fatalf("onTopOf Foreground = %q, want overlay's %q", got.Foreground, "#222222")
	}
	if !got.Bold || !got.Italic {
		t.Fatalf("onTopOf = %+v, want both Bold and Italic set (effects combine)", got)
	}
}

func TestOnTopOfNoColorOverlayKeepsBase(t *testing.T) {
	base := theme.Style{Foreground: "#111111", HasColor: true}
	overlay := theme.Style{Bold: true}
	got := onTopOf(overlay, base)
	if got.Foreground != "#111111" || !got.HasColor {
		t.Fatalf("onTopOf = %+v, want base color preserved when overlay has none", got)
	}
	if !got.Bold {
		t.Fatalf("onTopOf = %+v, want overlay's Bold to still apply", got)
	}
}

func TestResolveReferenceEmptyDest(t *testing.T) {
	if _, ok := resolveReference(theme.Environment{}, ""); ok {
		t.Fatalf("resolveReference(\"\") = ok, want not ok")
	}
}

func TestResolveReferenceAbsoluteURLPassesThrough(t *testing.T) {
	got, ok := resolveReference(theme.Environment{}, "https://example.com/a")
	if !ok || got != "https://example.com/a" {
		t.Fatalf("resolveReference(absolute) = (%q, %v), want unchanged absolute URL", got, ok)
	}
}

func TestResolveReferenceRelativeNeedsBaseURL(t *testing.T) {
	if _, ok := resolveReference(theme.Environment{}, "./a.png"); ok {
		t.Fatalf("resolveReference(relative, no base) = ok, want not ok")
	}
	got, ok := resolveReference(theme.Environment{BaseURL: "file:///tmp/docs/"}, "a.png")
	if !ok || got != "file:///tmp/docs/a.png" {
		t.Fatalf("resolveReference(relative, with base) = (%q, %v), want resolved path", got, ok)
	}
}

func TestHighlighterForRequiresANSIStyle(t *testing.T) {
	_, ok := highlighterFor(theme.Capabilities{}, "go", theme.DefaultSyntaxDB())
	if ok {
		t.Fatalf("highlighterFor without ANSI style capability = ok, want not ok")
	}
}

func TestHighlighterForKnownLanguage(t *testing.T) {
	_, ok := highlighterFor(theme.Capabilities{Style: theme.StyleAnsi}, "go", theme.DefaultSyntaxDB())
	if !ok {
		t.Fatalf("highlighterFor(go) with ANSI capability = not ok, want ok")
	}
}
