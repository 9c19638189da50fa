package config

import (
	"os"

	"github.com/arinmd/termcat/internal/theme"
)

// DetectCapabilities infers terminal capabilities from the process
// environment, following src/terminal/detect.rs's TerminalProgram::detect:
// $TERM is checked first since it survives ssh/sudo boundaries, then
// $TERM_PROGRAM, then $TERMINOLOGY. $KITTY_WINDOW_ID and $LC_TERMINAL are
// supplemented here as additional real-world Kitty/iTerm2 signals beyond
// what detect.rs checks, since not every Kitty or iTerm2 session sets $TERM
// or $TERM_PROGRAM to a recognizable value.
func DetectCapabilities() theme.Capabilities {
	term := os.Getenv("TERM")

	// $TERM unset with no $COLORTERM either is as safe a "no formatting"
	// signal as an explicit dumb terminal.
	if term == "dumb" || (term == "" && os.Getenv("COLORTERM") == "") {
		return theme.Dumb()
	}

	ansi := theme.Capabilities{Style: theme.StyleAnsi, Link: theme.LinkOsc8}

	switch {
	case term == "xterm-kitty", os.Getenv("KITTY_WINDOW_ID") != "":
		ansi.Image = theme.ImageKitty
		return ansi
	case term == "wezterm", os.Getenv("TERM_PROGRAM") == "WezTerm":
		ansi.Image = theme.ImageKitty
		return ansi
	case os.Getenv("TERM_PROGRAM") == "iTerm.app", os.Getenv("LC_TERMINAL") == "iTerm2":
		ansi.Image = theme.ImageITerm2
		ansi.Mark = theme.MarkITerm2
		return ansi
	case os.Getenv("TERMINOLOGY") == "1":
		ansi.Image = theme.ImageTerminology
		return ansi
	default:
		return ansi
	}
}
