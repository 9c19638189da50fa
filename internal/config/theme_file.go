package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arinmd/termcat/internal/theme"
)

// themeFile is the on-disk shape of a custom --theme-file: hex colors plus
// the effect bits a Style carries, parsed directly with yaml.v3 rather than
// through viper since a theme is a standalone document, not part of
// config.yaml's settings tree.
type themeFile struct {
	Text      styleFile `yaml:"text"`
	Heading   styleFile `yaml:"heading"`
	Code      styleFile `yaml:"code"`
	Link      styleFile `yaml:"link"`
	ImageLink styleFile `yaml:"image_link"`
	HTML      styleFile `yaml:"html"`
	Rule      string    `yaml:"rule"`
	Border    string    `yaml:"border"`
}

type styleFile struct {
	Color     string `yaml:"color"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
	Strike    bool   `yaml:"strike"`
}

func (s styleFile) toStyle() theme.Style {
	return theme.Style{
		Foreground: lipgloss.Color(s.Color),
		HasColor:   s.Color != "",
		Bold:       s.Bold,
		Italic:     s.Italic,
		Underline:  s.Underline,
		Strike:     s.Strike,
	}
}

// LoadThemeFile reads a YAML theme document from path and returns the
// theme.Theme it describes. Any style the file omits keeps
// theme.DefaultTheme's value for that slot, so a theme file can override
// just the colors it cares about.
func LoadThemeFile(path string) (theme.Theme, error) {
	base := theme.DefaultTheme()

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("termcat: read theme file: %w", err)
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("termcat: parse theme file: %w", err)
	}

	result := base
	if f.Text.Color != "" {
		result.Text = f.Text.toStyle()
	}
	if f.Heading.Color != "" {
		result.Heading = f.Heading.toStyle()
	}
	if f.Code.Color != "" {
		result.Code = f.Code.toStyle()
	}
	if f.Link.Color != "" {
		result.Link = f.Link.toStyle()
	}
	if f.ImageLink.Color != "" {
		result.ImageLink = f.ImageLink.toStyle()
	}
	if f.HTML.Color != "" {
		result.HTML = f.HTML.toStyle()
	}
	if f.Rule != "" {
		result.Rule = lipgloss.Color(f.Rule)
	}
	if f.Border != "" {
		result.Border = lipgloss.Color(f.Border)
	}
	return result, nil
}
