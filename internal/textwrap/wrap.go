// Package textwrap is the Line Composer (spec.md §4.3): it segments an
// inline text run into words, measures their display width with
// mattn/go-runewidth and rivo/uniseg the way the teacher's
// internal/ui/highlight.go measures ANSI-stripped line width, and wraps
// them first-fit against the current line cursor.
package textwrap

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/arinmd/termcat/internal/theme"
)

// CurrentLine is the small cursor record threaded through a rendering run
// (spec.md §3 StateData, §4.3).
type CurrentLine struct {
	// Length is the display width of characters already written on the
	// current line, measured after the indent (invariant 2 of spec.md §3).
	Length int
	// Trailing is a pending single space (or empty) held aside until the
	// next fragment decides to continue the line or discard it on a wrap.
	Trailing string
}

// StyleWriter is the subset of the Output Emitter the composer calls to
// place text on the page.
type StyleWriter interface {
	WriteStyled(w io.Writer, style theme.Style, text string) error
	WriteIndent(w io.Writer, n int) error
}

type word struct {
	Text string
	Sep  string
}

// segmentWords splits text into words using Unicode word-boundary
// segmentation (uniseg.FirstWordInString), bundling adjacent non-space
// segments into a single word and capturing the whitespace that follows
// each word as its separator.
func segmentWords(text string) []word {
	var words []word
	var cur strings.Builder

	rest := text
	state := -1
	for len(rest) > 0 {
		var seg string
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		if seg == "" {
			break
		}
		if strings.TrimSpace(seg) == "" {
			if cur.Len() > 0 {
				words = append(words, word{Text: cur.String(), Sep: seg})
				cur.Reset()
			}
			continue
		}
		cur.WriteString(seg)
	}
	if cur.Len() > 0 {
		words = append(words, word{Text: cur.String()})
	}
	return words
}

// firstFit groups words into lines: the first line may use firstBudget
// cells, every following line contBudget cells. A single word that alone
// exceeds its line's budget is still placed on its own line rather than
// dropped (spec.md §8 invariant 11).
func firstFit(words []word, firstBudget, contBudget int) [][]word {
	var lines [][]word
	var current []word
	lineWidth := 0
	budget := firstBudget

	for _, w := range words {
		wWidth := runewidth.StringWidth(w.Text)
		if len(current) == 0 {
			current = append(current, w)
			lineWidth = wWidth
			continue
		}
		sepWidth := runewidth.StringWidth(current[len(current)-1].Sep)
		prospective := lineWidth + sepWidth + wWidth
		if prospective <= budget {
			current = append(current, w)
			lineWidth = prospective
			continue
		}
		lines = append(lines, current)
		current = []word{w}
		lineWidth = wWidth
		budget = contBudget
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func writeNewline(w io.Writer, emit StyleWriter, indent int) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return emit.WriteIndent(w, indent)
}

func joinLine(line []word, leading string) (string, string) {
	var sb strings.Builder
	sb.WriteString(leading)
	for i, w := range line {
		sb.WriteString(w.Text)
		if i != len(line)-1 {
			sb.WriteString(w.Sep)
		}
	}
	trailing := ""
	if len(line) > 0 {
		trailing = line[len(line)-1].Sep
	}
	return sb.String(), trailing
}

// Compose writes text under style, wrapping it to maxWidth starting from
// cur, and returns the updated cursor (spec.md §4.3
// write_styled_and_wrapped).
func Compose(w io.Writer, emit StyleWriter, style theme.Style, maxWidth, indent int, cur CurrentLine, text string) (CurrentLine, error) {
	words := segmentWords(text)
	if len(words) == 0 {
		return cur, nil
	}

	trailingWidth := runewidth.StringWidth(cur.Trailing)
	effective := cur.Length + indent + trailingWidth

	firstWordWidth := runewidth.StringWidth(words[0].Text)
	if cur.Length > 0 && effective+firstWordWidth > maxWidth {
		if err := writeNewline(w, emit, indent); err != nil {
			return cur, err
		}
		return Compose(w, emit, style, maxWidth, indent, CurrentLine{}, text)
	}

	firstBudget := maxWidth - effective
	if firstBudget < 0 {
		firstBudget = 0
	}
	contBudget := maxWidth - indent
	if contBudget < 0 {
		contBudget = 0
	}

	lines := firstFit(words, firstBudget, contBudget)

	for i, line := range lines {
		if i > 0 {
			if err := writeNewline(w, emit, indent); err != nil {
				return cur, err
			}
		}
		leading := ""
		if i == 0 {
			leading = cur.Trailing
		}
		text, trailing := joinLine(line, leading)
		if err := emit.WriteStyled(w, style, text); err != nil {
			return cur, err
		}
		if i == len(lines)-1 {
			length := runewidth.StringWidth(text)
			if i == 0 {
				// Still on the line cur started: count what was already there.
				length += cur.Length
			}
			cur = CurrentLine{Length: length, Trailing: trailing}
		}
	}
	return cur, nil
}
