package theme

import "testing"

func TestStyleWithers(t *testing.T) {
	base := Style{Foreground: "#ebdbb2", HasColor: true}

	if got := base.WithItalic(true); !got.Italic {
		t.Fatalf("WithItalic(true).Italic = false, want true")
	}
	if got := base.WithBold(true); !got.Bold {
		t.Fatalf("WithBold(true).Bold = false, want true")
	}
	if got := base.WithStrike(true); !got.Strike {
		t.Fatalf("WithStrike(true).Strike = false, want true")
	}

	// Withers must not mutate the receiver's other fields or share storage.
	italic := base.WithItalic(true)
	if base.Italic {
		t.Fatalf("base.Italic mutated by WithItalic copy")
	}
	if italic.Foreground != base.Foreground {
		t.Fatalf("WithItalic dropped Foreground: got %q, want %q", italic.Foreground, base.Foreground)
	}
}

func TestDumbHasNoCapabilities(t *testing.T) {
	d := Dumb()
	if d.Style != StyleNone || d.Link != LinkNone || d.Image != ImageNone || d.Mark != MarkNone {
		t.Fatalf("Dumb() = %+v, want all-zero capabilities", d)
	}
}

func TestDefaultThemeAllSlotsColored(t *testing.T) {
	th := DefaultTheme()
	slots := map[string]Style{
		"Text":      th.Text,
		"Heading":   th.Heading,
		"Code":      th.Code,
		"Link":      th.Link,
		"ImageLink": th.ImageLink,
		"HTML":      th.HTML,
	}
	for name, s := range slots {
		if !s.HasColor || s.Foreground == "" {
			t.Fatalf("DefaultTheme().%s = %+v, want HasColor and a non-empty Foreground", name, s)
		}
	}
	if th.Rule == "" || th.Border == "" {
		t.Fatalf("DefaultTheme() Rule/Border must be set, got Rule=%q Border=%q", th.Rule, th.Border)
	}
}

func TestDefaultSyntaxDBMatchesPaletteFold(t *testing.T) {
	if got := DefaultSyntaxDB().ChromaStyle; got != "solarized-dark" {
		t.Fatalf("DefaultSyntaxDB().ChromaStyle = %q, want %q (the only style internal/termctl's ANSI fold covers)", got, "solarized-dark")
	}
}
