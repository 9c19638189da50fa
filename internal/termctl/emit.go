// Package termctl is the Output Emitter (spec.md §4.4): the only part of
// the renderer that writes raw bytes. Every other component calls through
// here so that terminal control sequences live in one place. Styling is
// built the way the teacher's internal/ui/highlight.go formatters build
// SGR codes by hand (codes joined with ";", wrapped in ESC[...m / ESC[0m),
// generalized from "diff line" styling to the renderer's Theme/Style
// model, and colors are carried as lipgloss.Color the way
// internal/ui/styles.go carries theme colors.
package termctl

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arinmd/termcat/internal/highlight"
	"github.com/arinmd/termcat/internal/theme"
)

// Emitter writes styled bytes and terminal control sequences. It holds no
// mutable state beyond the capability set it was built with.
type Emitter struct {
	Caps theme.Capabilities
}

// New returns an Emitter bound to the given capabilities.
func New(caps theme.Capabilities) *Emitter {
	return &Emitter{Caps: caps}
}

// WriteIndent writes n spaces.
func (e *Emitter) WriteIndent(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Repeat(" ", n))
	return err
}

// WriteStyled writes text wrapped in the style's ANSI SGR sequence if the
// style capability is present; otherwise it writes text unchanged.
func (e *Emitter) WriteStyled(w io.Writer, style theme.Style, text string) error {
	if text == "" {
		return nil
	}
	if e.Caps.Style != theme.StyleAnsi {
		_, err := io.WriteString(w, text)
		return err
	}
	codes := sgrCodes(style)
	if len(codes) == 0 {
		_, err := io.WriteString(w, text)
		return err
	}
	_, err := fmt.Fprintf(w, "\x1b[%sm%s\x1b[0m", strings.Join(codes, ";"), text)
	return err
}

func sgrCodes(style theme.Style) []string {
	var codes []string
	if style.HasColor {
		if r, g, b, ok := hexRGB(string(style.Foreground)); ok {
			codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", r, g, b))
		}
	}
	if style.Bold {
		codes = append(codes, "1")
	}
	if style.Italic {
		codes = append(codes, "3")
	}
	if style.Underline {
		codes = append(codes, "4")
	}
	if style.Strike {
		codes = append(codes, "9")
	}
	return codes
}

func hexRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

// WriteRule writes length `═` characters in the theme's rule color,
// followed by a newline (spec.md §4.1 "Rules").
func (e *Emitter) WriteRule(w io.Writer, length int, color lipgloss.Color) error {
	if length < 0 {
		length = 0
	}
	if err := e.WriteStyled(w, theme.Style{Foreground: color, HasColor: true}, strings.Repeat("═", length)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteBorder writes the code-block top/bottom border: `─` repeated
// min(20, columns) times in the border color, then a newline.
func (e *Emitter) WriteBorder(w io.Writer, columns int, color lipgloss.Color) error {
	n := 20
	if columns < n {
		n = columns
	}
	if n < 0 {
		n = 0
	}
	if err := e.WriteStyled(w, theme.Style{Foreground: color, HasColor: true}, strings.Repeat("─", n)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteMark emits the iTerm2 "SetMark" OSC if the mark capability is
// present.
func (e *Emitter) WriteMark(w io.Writer) error {
	if e.Caps.Mark != theme.MarkITerm2 {
		return nil
	}
	_, err := io.WriteString(w, "\x1b]1337;SetMark\x1b\\")
	return err
}

// SetLinkURL emits the OSC 8 hyperlink-start sequence, rewriting a
// loopback/localhost file:// host to hostname first (spec.md §6).
func (e *Emitter) SetLinkURL(w io.Writer, rawURL, hostname string) error {
	_, err := fmt.Fprintf(w, "\x1b]8;;%s\x1b\\", RewriteFileHost(rawURL, hostname))
	return err
}

// ClearLinkURL emits the OSC 8 hyperlink-clear sequence.
func (e *Emitter) ClearLinkURL(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b]8;;\x1b\\")
	return err
}

// RewriteFileHost rewrites a file:// URL whose host is empty, "localhost",
// or a loopback address to hostname. Non-file URLs and file URLs with a
// non-loopback host pass through unchanged.
func RewriteFileHost(rawURL, hostname string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return rawURL
	}
	host := u.Hostname()
	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
			return rawURL
		}
	}
	u.Host = hostname
	return u.String()
}

// WriteAsANSI folds chroma/Solarized regions produced by internal/highlight
// through the fixed Solarized→ANSI palette and writes them (spec.md §4.4,
// §9 "Highlighting palette"). Regions with no style capability are written
// as plain text.
func (e *Emitter) WriteAsANSI(w io.Writer, regions []highlight.Region) error {
	for _, r := range regions {
		if e.Caps.Style != theme.StyleAnsi {
			if _, err := io.WriteString(w, r.Text); err != nil {
				return err
			}
			continue
		}

		var codes []string
		if r.Foreground != "" {
			if code := resolvePaletteColor(r.Foreground); code != ansiNone {
				codes = append(codes, fmt.Sprintf("3%d", code))
			}
		}
		if r.Bold {
			codes = append(codes, "1")
		}
		if r.Italic {
			codes = append(codes, "3")
		}
		if r.Underline {
			codes = append(codes, "4")
		}

		var err error
		if len(codes) == 0 {
			_, err = io.WriteString(w, r.Text)
		} else {
			_, err = fmt.Fprintf(w, "\x1b[%sm%s\x1b[0m", strings.Join(codes, ";"), r.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// LinkReferenceDefinition is a deferred "[N]: url title" entry, flushed at
// headings or end of document (spec.md §3, §8 invariant 4).
type LinkReferenceDefinition struct {
	Index int
	URL   string
	Title string
}

// WriteLinkRefs writes the pending reference list: a blank line, then one
// "[N]: url title" line per entry in the link style. When the style
// capability is present the target itself is wrapped in an OSC 8
// hyperlink, so the reference list's URLs are clickable too.
func (e *Emitter) WriteLinkRefs(w io.Writer, refs []LinkReferenceDefinition, linkStyle theme.Style, hostname string, caps theme.Capabilities) error {
	if len(refs) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	hyperlink := caps.Style == theme.StyleAnsi
	for _, ref := range refs {
		if err := e.WriteStyled(w, linkStyle, fmt.Sprintf("[%d]: ", ref.Index)); err != nil {
			return err
		}
		target := RewriteFileHost(ref.URL, hostname)
		if hyperlink {
			if err := e.SetLinkURL(w, ref.URL, hostname); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, target); err != nil {
			return err
		}
		if hyperlink {
			if err := e.ClearLinkURL(w); err != nil {
				return err
			}
		}
		if ref.Title != "" {
			if _, err := fmt.Fprintf(w, " %s", ref.Title); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
