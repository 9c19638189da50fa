package highlight

import "testing"

func TestNewUnknownLanguageFails(t *testing.T) {
	if _, ok := New("not-a-real-language", "solarized-dark"); ok {
		t.Fatalf("New with unknown language returned ok=true, want false")
	}
}

func TestNewEmptyLanguageFails(t *testing.T) {
	if _, ok := New("", "solarized-dark"); ok {
		t.Fatalf("New with empty language returned ok=true, want false")
	}
}

func TestNewKnownLanguageSucceeds(t *testing.T) {
	h, ok := New("go", "solarized-dark")
	if !ok || h == nil {
		t.Fatalf("New(\"go\", ...) = (%v, %v), want a Highlighter and ok=true", h, ok)
	}
}

func TestNewUnknownStyleFallsBack(t *testing.T) {
	h, ok := New("go", "not-a-real-style")
	if !ok || h == nil {
		t.Fatalf("New with unknown style = (%v, %v), want fallback style and ok=true", h, ok)
	}
}

func TestLineTokenizesKeepsAllText(t *testing.T) {
	h, ok := New("go", "solarized-dark")
	if !ok {
		t.Fatalf("New(\"go\", ...) failed")
	}
	line := `func main() {}`
	regions := h.Line(line)
	if len(regions) == 0 {
		t.Fatalf("Line(%q) produced no regions", line)
	}
	var joined string
	for _, r := range regions {
		joined += r.Text
	}
	if joined != line {
		t.Fatalf("Line(%q) regions joined = %q, want original text preserved", line, joined)
	}
}

func TestLineDropsTrailingNewlineFromTokens(t *testing.T) {
	h, _ := New("go", "solarized-dark")
	regions := h.Line("x := 1")
	for _, r := range regions {
		if r.Text == "" {
			t.Fatalf("Line produced an empty-text region, want newline-only tokens dropped: %+v", regions)
		}
	}
}
