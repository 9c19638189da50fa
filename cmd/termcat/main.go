// Command termcat renders a CommonMark document to the current terminal.
// It contains no rendering logic itself: it reads input, builds
// theme.Settings/theme.Environment, and hands both plus the parsed event
// stream to internal/render.Render, the way the teacher's cmd/root.go wires
// flags and config into a provider before handing off to the chat loop.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arinmd/termcat/internal/config"
	"github.com/arinmd/termcat/internal/mdparse"
	"github.com/arinmd/termcat/internal/render"
	"github.com/arinmd/termcat/internal/resource"
)

var (
	flagColumns       int
	flagChromaStyle   string
	flagThemeFile     string
	flagForceANSI     bool
	flagForceDumb     bool
	flagDisableImages bool
	flagDisableLinks  bool
)

var rootCmd = &cobra.Command{
	Use:   "termcat [file]",
	Short: "Render CommonMark to a styled, hyperlinked terminal",
	Long: `termcat renders a CommonMark document straight to your terminal:
headings, emphasis, links, tables and fenced code get ANSI styling,
OSC 8 hyperlinks and (on Kitty/iTerm2/Terminology) inline images.

Examples:
  termcat README.md
  cat CHANGELOG.md | termcat
  termcat --columns 100 notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&flagColumns, "columns", 0, "wrap width override (0 = auto-detect)")
	rootCmd.Flags().StringVar(&flagChromaStyle, "syntax-theme", "", "chroma style name for fenced code highlighting")
	rootCmd.Flags().StringVar(&flagThemeFile, "theme-file", "", "YAML file overriding the default color theme")
	rootCmd.Flags().BoolVar(&flagForceANSI, "ansi", false, "force ANSI styling even when output isn't a terminal")
	rootCmd.Flags().BoolVar(&flagForceDumb, "plain", false, "disable all styling, links and images")
	rootCmd.Flags().BoolVar(&flagDisableImages, "no-images", false, "never draw inline images")
	rootCmd.Flags().BoolVar(&flagDisableLinks, "no-links", false, "never emit OSC 8 hyperlinks")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if isBrokenPipe(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "termcat:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	source, err := readSource(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	events, err := mdparse.Parse(source)
	if err != nil {
		return fmt.Errorf("parse markdown: %w", err)
	}

	fileCfg, err := config.Load()
	if err != nil {
		return err
	}

	settings, err := config.BuildSettings(os.Stdout, fileCfg, config.Overrides{
		Columns:       flagColumns,
		ChromaStyle:   flagChromaStyle,
		ThemeFile:     flagThemeFile,
		ForceANSI:     flagForceANSI,
		ForceDumb:     flagForceDumb,
		DisableImages: flagDisableImages,
		DisableLinks:  flagDisableLinks,
	})
	if err != nil {
		return err
	}
	env := config.BuildEnvironment(path)

	err = render.Render(cmd.Context(), os.Stdout, events, settings, env, resource.Default())
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

func readSource(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// isBrokenPipe reports whether err (or something it wraps) is EPIPE, which
// happens routinely when termcat's output is piped into `head` or similar
// and the reader exits early. It's not a real failure and must never be
// reported as one (spec.md §5, §9 "broken pipe").
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
