package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		DocText        string `toml:"doc_text"`
		Heading        string `toml:"heading"`
		HeadingAnchor  string `toml:"heading_anchor"`
		Link           string `toml:"link"`
		CodeInline     string `toml:"code_inline"`
		CodeText       string `toml:"code_text"`
		CodeLangLabel  string `toml:"code_lang_label"`
		BlockquoteBar  string `toml:"blockquote_bar"`
		Blockquote     string `toml:"blockquote"`
		ListBullet     string `toml:"list_bullet"`
		TableBorder    string `toml:"table_border"`
		TableHeader    string `toml:"table_header"`
		Rule           string `toml:"rule"`
		Cursor         string `toml:"cursor"`
		RawText        string `toml:"raw_text"`
		RawCursor      string `toml:"raw_cursor"`
		PromptLabel    string `toml:"prompt_label"`
		PromptText     string `toml:"prompt_text"`
		PromptCursor   string `toml:"prompt_cursor"`
		PromptMatch    string `toml:"prompt_match"`
		StatusMode     string `toml:"status_mode"`
		StatusMessage  string `toml:"status_message"`
		StatusModified string `toml:"status_modified"`
		StatusFormats  string `toml:"status_formats"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	// User config directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mdsurface", "themes"))
	}

	// User local share directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "mdsurface", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to
// Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	// Start with Tokyo Night as base
	t := TokyoNight()
	c := &t.Colors

	overrides := []struct {
		value string
		dst   *tcell.Color
	}{
		{config.Colors.DocText, &c.DocText},
		{config.Colors.Heading, &c.Heading},
		{config.Colors.HeadingAnchor, &c.HeadingAnchor},
		{config.Colors.Link, &c.Link},
		{config.Colors.CodeInline, &c.CodeInline},
		{config.Colors.CodeText, &c.CodeText},
		{config.Colors.CodeLangLabel, &c.CodeLangLabel},
		{config.Colors.BlockquoteBar, &c.BlockquoteBar},
		{config.Colors.Blockquote, &c.Blockquote},
		{config.Colors.ListBullet, &c.ListBullet},
		{config.Colors.TableBorder, &c.TableBorder},
		{config.Colors.TableHeader, &c.TableHeader},
		{config.Colors.Rule, &c.Rule},
		{config.Colors.Cursor, &c.Cursor},
		{config.Colors.RawText, &c.RawText},
		{config.Colors.RawCursor, &c.RawCursor},
		{config.Colors.PromptLabel, &c.PromptLabel},
		{config.Colors.PromptText, &c.PromptText},
		{config.Colors.PromptCursor, &c.PromptCursor},
		{config.Colors.PromptMatch, &c.PromptMatch},
		{config.Colors.StatusMode, &c.StatusMode},
		{config.Colors.StatusMessage, &c.StatusMessage},
		{config.Colors.StatusModified, &c.StatusModified},
		{config.Colors.StatusFormats, &c.StatusFormats},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = ParseColorString(o.value)
		}
	}

	if config.Name != "" {
		t.Name = config.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	if themeName == "default" {
		return Default()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		// Fall back to Tokyo Night
		return TokyoNight()
	}

	return theme
}
