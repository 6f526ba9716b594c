package registry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/wm"
)

func TestDefaultCatalog(t *testing.T) {
	r := New()

	want := []string{"chrome", "gmail", "notion", "instagram", "facebook", "salesforce",
		"quickbooks", "slack", "linkedin", "sheets", "zoom", "asana"}
	got := r.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if r.Fallback() != "chrome" {
		t.Errorf("Fallback() = %q, want chrome", r.Fallback())
	}
	for _, id := range DefaultPinned {
		if !r.Has(id) {
			t.Errorf("default pinned app %q is not registered", id)
		}
	}
}

func TestLaunchCallsOpenOnce(t *testing.T) {
	r := New(WithStreamBase("http://stream.local:9000/"))

	tests := []struct {
		id        string
		wantApp   string
		wantTitle string
		wantURL   string
	}{
		{"gmail", "gmail", "Gmail", "http://stream.local:9000/?app=gmail"},
		{"sheets", "sheets", "Google Sheets", "http://stream.local:9000/?app=sheets"},
		{"winamp", "chrome", "Chrome", "http://stream.local:9000/?app=chrome"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			var calls []wm.Spec[Payload]
			open := func(spec wm.Spec[Payload]) wm.Window[Payload] {
				calls = append(calls, spec)
				return wm.Window[Payload]{ID: "w1", AppID: spec.AppID, Title: spec.Title, Payload: spec.Payload}
			}

			w := r.Launch(tt.id, open)
			if len(calls) != 1 {
				t.Fatalf("open called %d times, want 1", len(calls))
			}
			spec := calls[0]
			if spec.AppID != tt.wantApp || spec.Title != tt.wantTitle {
				t.Errorf("spec = %s/%q, want %s/%q", spec.AppID, spec.Title, tt.wantApp, tt.wantTitle)
			}
			if !spec.Geometry.Empty() {
				t.Error("launch should leave geometry to the default placement")
			}
			if spec.Payload.URL != tt.wantURL || !spec.Payload.Streaming || !spec.Payload.HideControls {
				t.Errorf("payload = %+v", spec.Payload)
			}
			if w.ID != "w1" {
				t.Errorf("Launch returned %+v", w)
			}
		})
	}
}

func TestPayloadWithoutStreaming(t *testing.T) {
	r := New(WithApps(AppDefinition{ID: "Docs", DisplayName: "Docs", URL: "https://docs.example.com"}))

	a, err := r.Resolve("docs")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p := a.Payload()
	if p.URL != "https://docs.example.com" || p.Streaming || p.HideControls {
		t.Errorf("Payload() = %+v", p)
	}
	if a.Icon != "D" {
		t.Errorf("Icon = %q, want derived initial", a.Icon)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := New().Resolve("winamp")
	if !errors.Is(err, ErrUnknownApp) {
		t.Errorf("Resolve(winamp) error = %v, want ErrUnknownApp", err)
	}
}

func TestFallbackOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"registered fallback", []Option{WithFallback("notion")}, "notion"},
		{"unregistered fallback reverts to first app", []Option{WithFallback("winamp")}, "chrome"},
		{
			"empty defaults use first custom app",
			[]Option{WithoutDefaults(), WithApps(AppDefinition{ID: "mail", URL: "x"})},
			"mail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts...).Fallback(); got != tt.want {
				t.Errorf("Fallback() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithAppsWarnsOnBlankID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	r := New(WithApps(AppDefinition{ID: "  ", DisplayName: "Ghost", URL: "https://ghost.example"}))
	if len(r.IDs()) != len(New().IDs()) {
		t.Errorf("blank app was registered: %v", r.IDs())
	}
	if out := buf.String(); !strings.Contains(out, "skipping application") || !strings.Contains(out, "Ghost") {
		t.Errorf("expected a warning naming the app, got %q", out)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"figma.jsonc": `{
			// design tool
			"id": "figma",
			"name": "Figma",
			"url": "https://figma.com",
			"streaming": false,
		}`,
		"trello.json": `{"name": "Trello Board", "url": "https://trello.com"}`,
		"broken.json": `{"name": `,
		"empty.json":  `{"name": "Nothing"}`,
		"notes.txt":   `{"name": "ignored", "url": "x"}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0750); err != nil {
		t.Fatal(err)
	}

	apps, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	byID := make(map[string]AppDefinition)
	for _, a := range apps {
		byID[a.ID] = a
	}
	if len(byID) != 2 {
		t.Fatalf("loaded %d apps, want 2: %+v", len(byID), apps)
	}

	figma := byID["figma"]
	if figma.DisplayName != "Figma" || figma.Streaming || !figma.HideControls {
		t.Errorf("figma = %+v", figma)
	}
	if trello, ok := byID["trello-board"]; !ok || !trello.Streaming {
		t.Errorf("trello = %+v, ok=%v", trello, ok)
	}

	r := New(WithApps(apps...))
	if !r.Has("figma") || !r.Has("trello-board") {
		t.Error("catalog apps were not registered")
	}
}

func TestLoadCatalogMissingDir(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
