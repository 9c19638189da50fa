package termctl

import "fmt"

// solarizedANSI maps the fixed Solarized palette to 8-color ANSI codes
// (spec.md §9 "Highlighting palette" / §4.4 write_as_ansi). Base colors
// (the background/foreground ramp) fold to "no color" so they render as
// the terminal's default foreground; accent colors fold to their nearest
// named ANSI color. Any RGB outside this table is a theme mismatch
// between the bundled style and this palette and is a programming bug.
var solarizedANSI = map[string]int{
	// base ramp -> default foreground (ansiNone)
	"#002b36": ansiNone,
	"#073642": ansiNone,
	"#586e75": ansiNone,
	"#657b83": ansiNone,
	"#839496": ansiNone,
	"#93a1a1": ansiNone,
	"#eee8d5": ansiNone,
	"#fdf6e3": ansiNone,

	// accents -> named ANSI colors
	"#b58900": ansiYellow,
	"#cb4b16": ansiYellow, // orange: no 8-color equivalent
	"#dc322f": ansiRed,
	"#d33682": ansiMagenta,
	"#6c71c4": ansiMagenta, // violet: no 8-color equivalent
	"#268bd2": ansiBlue,
	"#2aa198": ansiCyan,
	"#859900": ansiGreen,
}

const (
	ansiNone = -1
	ansiRed     = 1
	ansiGreen   = 2
	ansiYellow  = 3
	ansiBlue    = 4
	ansiMagenta = 5
	ansiCyan    = 6
)

// resolvePaletteColor folds a Solarized hex color to its ANSI SGR
// foreground code, or ansiNone if it should render as default foreground.
// Panics with the offending RGB on an unknown color: the bundled theme
// and this palette have diverged (spec.md §9).
func resolvePaletteColor(hex string) int {
	code, ok := solarizedANSI[hex]
	if !ok {
		panic(fmt.Sprintf("termctl: highlighted region uses color %s outside the Solarized palette", hex))
	}
	return code
}
