package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/tidwall/jsonc"
)

// GetThemesDir returns the custom themes directory (~/.config/aios/themes/),
// creating it when missing.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("aios/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

func isThemeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".json" || ext == ".jsonc"
}

// LoadCustomThemes registers every *.json and *.jsonc theme in themesDir with
// bubbletint and returns the IDs it loaded. Bad files are logged and skipped.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !isThemeFile(entry.Name()) {
			continue
		}
		t, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadCustomThemeFile reads one theme. Comments and trailing commas are
// allowed. The ID falls back to the lowercased file name, and missing colors
// are filled in.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - path is from user's config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(jsonc.ToJSON(data), &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// fillDefaults sets nil colors. Base colors get the built-in desktop palette,
// the cursor follows the foreground and bright variants follow their normal
// counterparts.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		field **tint.Color
		hex   string
	}{
		{&t.Fg, "#e2e8f0"},
		{&t.Bg, "#1e1b4b"},
		{&t.Black, "#0f172a"},
		{&t.Red, "#f87171"},
		{&t.Green, "#4ade80"},
		{&t.Yellow, "#fbbf24"},
		{&t.Blue, "#7dd3fc"},
		{&t.Purple, "#c084fc"},
		{&t.Cyan, "#67e8f9"},
		{&t.White, "#e5e7eb"},
	}
	for _, b := range base {
		if *b.field == nil {
			*b.field = tint.FromHex(b.hex)
		}
	}

	derived := []struct {
		field **tint.Color
		from  *tint.Color
	}{
		{&t.Cursor, t.Fg},
		{&t.BrightBlack, t.Black},
		{&t.BrightRed, t.Red},
		{&t.BrightGreen, t.Green},
		{&t.BrightYellow, t.Yellow},
		{&t.BrightBlue, t.Blue},
		{&t.BrightPurple, t.Purple},
		{&t.BrightCyan, t.Cyan},
		{&t.BrightWhite, t.White},
	}
	for _, d := range derived {
		if *d.field == nil {
			*d.field = copyColor(d.from)
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
