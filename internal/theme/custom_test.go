package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		body      string
		wantID    string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "explicit id",
			file:      "whatever.json",
			body:      `{"id": "midnight", "display_name": "Midnight", "fg": "#ffffff", "bg": "#000000"}`,
			wantID:    "midnight",
			wantTitle: "Midnight",
		},
		{
			name:      "id from filename",
			file:      "My-Cool-Theme.json",
			body:      `{"fg": "#ffffff"}`,
			wantID:    "my-cool-theme",
			wantTitle: "my-cool-theme",
		},
		{
			name: "jsonc with comments",
			file: "lagoon.jsonc",
			body: `{
				// desktop accent
				"bright_cyan": "#22d3ee",
			}`,
			wantID:    "lagoon",
			wantTitle: "lagoon",
		},
		{
			name:    "invalid",
			file:    "bad.json",
			body:    "not valid json{{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			got, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCustomThemeFile: %v", err)
			}
			if got.ID != tt.wantID || got.DisplayName != tt.wantTitle {
				t.Errorf("ID/DisplayName = %q/%q, want %q/%q", got.ID, got.DisplayName, tt.wantID, tt.wantTitle)
			}
		})
	}
}

func TestFillDefaults(t *testing.T) {
	th := &tint.Tint{
		Fg:   tint.FromHex("#c0c0c0"),
		Cyan: tint.FromHex("#00aaaa"),
	}
	fillDefaults(th)

	for name, c := range map[string]*tint.Color{
		"Bg": th.Bg, "Cursor": th.Cursor, "Black": th.Black, "Red": th.Red,
		"BrightBlack": th.BrightBlack, "BrightWhite": th.BrightWhite,
	} {
		if c == nil {
			t.Errorf("%s left nil", name)
		}
	}
	if th.Cursor.R != th.Fg.R || th.Cursor.G != th.Fg.G || th.Cursor.B != th.Fg.B {
		t.Error("Cursor should follow Fg")
	}
	if th.BrightCyan.R != th.Cyan.R || th.BrightCyan.G != th.Cyan.G || th.BrightCyan.B != th.Cyan.B {
		t.Error("BrightCyan should follow Cyan")
	}
	if th.BrightCyan == th.Cyan {
		t.Error("derived colors must be copies")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "readme.txt", "not a theme")
	writeTheme(t, dir, "broken.json", "{")
	writeTheme(t, dir, "aios-test-registration.json", `{"fg": "#ffffff", "bg": "#000000"}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != "aios-test-registration" {
		t.Fatalf("loaded = %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "aios-test-registration") {
		t.Error("custom theme not registered")
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing directory should error")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#1e1b4b", "#1e1b4b", true},
		{"#fff", "#ffffff", true},
		{"312E81", "#312e81", true},
		{"#12345", "", false},
		{"#gggggg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c, ok := ParseHex(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseHex(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && ColorToString(c) != tt.want {
			t.Errorf("ParseHex(%q) = %s, want %s", tt.in, ColorToString(c), tt.want)
		}
	}
}

func TestBlend(t *testing.T) {
	black, _ := ParseHex("#000000")
	white, _ := ParseHex("#ffffff")

	tests := []struct {
		t    float64
		want string
	}{
		{0, "#000000"},
		{1, "#ffffff"},
		{0.5, "#808080"},
		{-3, "#000000"},
		{7, "#ffffff"},
	}
	for _, tt := range tests {
		if got := ColorToString(Blend(black, white, tt.t)); got != tt.want {
			t.Errorf("Blend(%v) = %s, want %s", tt.t, got, tt.want)
		}
	}

	red, _ := ParseHex("#f00")
	blue, _ := ParseHex("#0000ff")
	if got := ColorToString(Blend(red, blue, 0.5)); got != "#800080" {
		t.Errorf("Blend(red, blue, 0.5) = %s, want #800080", got)
	}
}

func TestAccessorsWithoutTheme(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("empty theme name should disable theming")
	}
	if got := ColorToString(DesktopBg()); got != "#1e1b4b" {
		t.Errorf("DesktopBg = %s", got)
	}
	if ColorToString(BorderFocused()) == ColorToString(BorderUnfocused()) {
		t.Error("focused and unfocused borders should differ")
	}
}
