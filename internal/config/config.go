// Package config is the ambient configuration layer: it loads an optional
// config.yaml the way the teacher's internal/config/config.go loads provider
// settings with spf13/viper, detects the terminal program from environment
// variables the way src/terminal/detect.rs does, and folds both plus CLI
// flag overrides into the theme.Settings/theme.Environment the render core
// needs. internal/render never reads viper or the environment itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/arinmd/termcat/internal/theme"
)

// FileConfig is the optional on-disk configuration, unmarshaled by viper.
type FileConfig struct {
	Columns       int    `mapstructure:"columns"`
	ChromaStyle   string `mapstructure:"chroma_style"`
	DisableImages bool   `mapstructure:"disable_images"`
	DisableLinks  bool   `mapstructure:"disable_links"`
}

// GetConfigDir returns the XDG config directory for termcat, honoring
// $XDG_CONFIG_HOME exactly as the teacher's GetConfigDir does.
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "termcat"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "termcat"), nil
}

// Load reads config.yaml from the XDG config dir (or the current directory)
// if present. A missing file is not an error; its absence just means every
// FileConfig field keeps its zero value.
func Load() (FileConfig, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return FileConfig{}, fmt.Errorf("termcat: config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return FileConfig{}, fmt.Errorf("termcat: read config: %w", err)
		}
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return FileConfig{}, fmt.Errorf("termcat: unmarshal config: %w", err)
	}
	return cfg, nil
}

// Overrides carries the CLI flag values that take precedence over both the
// file config and auto-detection.
type Overrides struct {
	Columns       int
	ChromaStyle   string
	ThemeFile     string
	ForceANSI     bool
	ForceDumb     bool
	DisableImages bool
	DisableLinks  bool
}

// DetectSize reports the terminal's column/row count. When stdout isn't a
// terminal (output piped to a file or another process) or the ioctl fails,
// it falls back to 80 columns, matching common CLI convention for
// non-interactive output.
func DetectSize(out *os.File) theme.TerminalSize {
	if out != nil && term.IsTerminal(int(out.Fd())) {
		if cols, rows, err := term.GetSize(int(out.Fd())); err == nil {
			return theme.TerminalSize{Columns: cols, Rows: rows}
		}
	}
	return theme.TerminalSize{Columns: 80, Rows: 24}
}

// BuildSettings folds file config, environment auto-detection and CLI
// overrides into one theme.Settings, CLI overrides winning over the file,
// the file winning over detection.
func BuildSettings(out *os.File, file FileConfig, ov Overrides) (theme.Settings, error) {
	size := DetectSize(out)
	if ov.Columns > 0 {
		size.Columns = ov.Columns
	} else if file.Columns > 0 {
		size.Columns = file.Columns
	}

	caps := DetectCapabilities()
	if ov.ForceDumb {
		caps = theme.Dumb()
	} else if ov.ForceANSI {
		caps.Style = theme.StyleAnsi
		caps.Link = theme.LinkOsc8
	}
	if ov.DisableImages || file.DisableImages {
		caps.Image = theme.ImageNone
	}
	if ov.DisableLinks || file.DisableLinks {
		caps.Link = theme.LinkNone
	}

	syntax := theme.DefaultSyntaxDB()
	if ov.ChromaStyle != "" {
		syntax.ChromaStyle = ov.ChromaStyle
	} else if file.ChromaStyle != "" {
		syntax.ChromaStyle = file.ChromaStyle
	}

	palette := theme.DefaultTheme()
	if ov.ThemeFile != "" {
		var err error
		palette, err = LoadThemeFile(ov.ThemeFile)
		if err != nil {
			return theme.Settings{}, err
		}
	}

	return theme.Settings{
		Capabilities: caps,
		Size:         size,
		Syntax:       syntax,
		Theme:        palette,
	}, nil
}

// BuildEnvironment derives a rendering Environment from the path being
// rendered: its directory becomes the base URL for resolving relative
// links/images, and the local hostname qualifies file:// URLs the way
// spec.md §6 requires.
func BuildEnvironment(inputPath string) theme.Environment {
	env := theme.Environment{Hostname: "localhost"}
	if host, err := os.Hostname(); err == nil && host != "" {
		env.Hostname = host
	}
	if inputPath == "" || inputPath == "-" {
		if cwd, err := os.Getwd(); err == nil {
			env.BaseURL = dirURL(cwd)
		}
		return env
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return env
	}
	env.BaseURL = dirURL(filepath.Dir(abs))
	return env
}

func dirURL(dir string) string {
	if filepath.Separator != '/' {
		dir = filepath.ToSlash(dir)
	}
	if dir == "" {
		return ""
	}
	if dir[0] != '/' {
		dir = "/" + dir
	}
	return "file://" + dir + "/"
}
