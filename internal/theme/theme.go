// Package theme holds the immutable inputs to a render: terminal
// capabilities, size, color theme and environment. It mirrors the way the
// teacher keeps Theme/Styles as plain data bound to a lipgloss renderer
// (internal/ui/styles.go), generalized from a chat UI palette to the
// rendering core's style set.
package theme

import "github.com/charmbracelet/lipgloss"

// StyleCapability says whether the terminal accepts ANSI SGR sequences.
type StyleCapability int

const (
	StyleNone StyleCapability = iota
	StyleAnsi
)

// LinkCapability says whether the terminal supports OSC 8 hyperlinks.
type LinkCapability int

const (
	LinkNone LinkCapability = iota
	LinkOsc8
)

// MarkCapability says whether the terminal supports iTerm2 jump marks.
type MarkCapability int

const (
	MarkNone MarkCapability = iota
	MarkITerm2
)

// ImageCapability names the inline image protocol, if any, the terminal
// understands.
type ImageCapability int

const (
	ImageNone ImageCapability = iota
	ImageTerminology
	ImageITerm2
	ImageKitty
)

// Capabilities is a value, not a type hierarchy: the core dispatches on
// these tags and falls back when a capability is absent, exactly as
// spec.md §4.4 and §6 require.
type Capabilities struct {
	Style StyleCapability
	Link  LinkCapability
	Image ImageCapability
	Mark  MarkCapability
}

// Dumb is the capability set with nothing enabled.
func Dumb() Capabilities { return Capabilities{} }

// PixelSize is the optional pixel dimension of the terminal window, used
// for sizing Kitty placements.
type PixelSize struct {
	Width, Height int
}

// TerminalSize is the terminal's reported size.
type TerminalSize struct {
	Columns, Rows int
	Pixels        *PixelSize
}

// Style is a single text style: a foreground color plus effect bits. The
// zero Style renders unstyled text.
type Style struct {
	Foreground lipgloss.Color
	HasColor   bool
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
}

// WithItalic returns a copy of s with italic toggled to v.
func (s Style) WithItalic(v bool) Style { s.Italic = v; return s }

// WithBold returns a copy of s with bold toggled to v.
func (s Style) WithBold(v bool) Style { s.Bold = v; return s }

// WithStrike returns a copy of s with strikethrough toggled to v.
func (s Style) WithStrike(v bool) Style { s.Strike = v; return s }

// Theme is the fixed palette the renderer draws from. Colors are hex
// strings consumed by lipgloss.Color, following DefaultTheme in the
// teacher's internal/ui/styles.go.
type Theme struct {
	Text      Style // default prose
	Heading   Style
	Code      Style // inline code / literal code blocks
	Link      Style
	ImageLink Style
	HTML      Style
	Rule      lipgloss.Color
	Border    lipgloss.Color // code-block border
}

// DefaultTheme mirrors the teacher's gruvbox DefaultTheme, adapted to the
// renderer's fixed style set instead of a chat UI's.
func DefaultTheme() Theme {
	const (
		fg     = "#ebdbb2"
		accent = "#83a598"
		green  = "#b8bb26"
		yellow = "#fabd2f"
		gray   = "#928374"
	)
	return Theme{
		Text:      Style{Foreground: lipgloss.Color(fg), HasColor: true},
		Heading:   Style{Foreground: lipgloss.Color(accent), HasColor: true, Bold: true},
		Code:      Style{Foreground: lipgloss.Color(green), HasColor: true},
		Link:      Style{Foreground: lipgloss.Color(accent), HasColor: true, Underline: true},
		ImageLink: Style{Foreground: lipgloss.Color(accent), HasColor: true, Underline: true, Italic: true},
		HTML:      Style{Foreground: lipgloss.Color(gray), HasColor: true},
		Rule:      lipgloss.Color(yellow),
		Border:    lipgloss.Color(accent),
	}
}

// SyntaxDB names the chroma style used for fenced code highlighting; kept
// as data on Settings so callers (and tests) can swap it without touching
// the highlighter package's default.
type SyntaxDB struct {
	ChromaStyle string // e.g. "solarized-dark"
}

// DefaultSyntaxDB names the chroma style whose RGB output is guaranteed to
// be covered by internal/termctl's Solarized palette fold. Any other style
// risks internal/termctl.WriteAsANSI panicking on an unrecognized color
// (spec.md §9 "Highlighting palette").
func DefaultSyntaxDB() SyntaxDB { return SyntaxDB{ChromaStyle: "solarized-dark"} }

// Settings are the immutable inputs to one rendering run.
type Settings struct {
	Capabilities Capabilities
	Size         TerminalSize
	Syntax       SyntaxDB
	Theme        Theme
}

// Environment carries the base URL for resolving relative references and
// the hostname used to qualify local file:// URLs in hyperlinks.
type Environment struct {
	BaseURL  string
	Hostname string
}
