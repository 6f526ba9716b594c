package mcp

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/registry"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T) (*Server, *desktop.Desktop) {
	t.Helper()
	d := desktop.New(desktop.Options{
		Apps:     registry.New(),
		Viewport: geometry.Viewport{Width: 1280, Height: 800},
	})
	return New(control.Serialized(d, &sync.Mutex{}), "test"), d
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	tool := s.mcp.GetTool(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := tool.Handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("%s returned %d content items", name, len(res.Content))
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("%s did not return text", name)
	}
	return text.Text, res.IsError
}

func TestToolsRegistered(t *testing.T) {
	s, _ := newTestServer(t)
	for _, name := range []string{
		"list_apps", "list_windows", "open_app", "launch_all", "focus_window",
		"close_window", "minimize_window", "maximize_window", "move_window",
		"resize_window", "arrange_grid", "pin_app", "unpin_app", "set_wallpaper",
	} {
		if s.mcp.GetTool(name) == nil {
			t.Errorf("missing tool %s", name)
		}
	}
}

func TestOpenMoveResize(t *testing.T) {
	s, d := newTestServer(t)

	text, isErr := callTool(t, s, "open_app", map[string]any{"app": "slack"})
	if isErr {
		t.Fatalf("open_app error: %s", text)
	}
	var w desktop.Window
	if err := yaml.Unmarshal([]byte(text), &w); err != nil {
		t.Fatalf("result is not YAML: %v\n%s", err, text)
	}
	if w.AppID != "slack" || !strings.Contains(w.Payload.URL, "app=slack") {
		t.Errorf("opened = %+v", w)
	}

	// JSON clients send numbers as floats
	if text, isErr := callTool(t, s, "move_window", map[string]any{"target": "Slack", "x": 100.0, "y": 150.0}); isErr {
		t.Fatalf("move_window error: %s", text)
	}
	if text, isErr := callTool(t, s, "resize_window", map[string]any{"width": 500.0, "height": 50.0}); isErr {
		t.Fatalf("resize_window error: %s", text)
	}

	got, _ := d.Store.Get(w.ID)
	want := geometry.Rect{X: 100, Y: 150, Width: 500, Height: geometry.MinHeight}
	if got.Geometry != want {
		t.Errorf("geometry = %+v, want %+v", got.Geometry, want)
	}
}

func TestToolErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"close with nothing open", "close_window", nil},
		{"focus unknown window", "focus_window", map[string]any{"target": "nope"}},
		{"pin unknown app", "pin_app", map[string]any{"app": "winamp"}},
		{"open without app", "open_app", map[string]any{}},
		{"move without y", "move_window", map[string]any{"x": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, isErr := callTool(t, s, tt.tool, tt.args); !isErr {
				t.Errorf("expected a tool error, got %s", text)
			}
		})
	}
}

func TestWallpaperAndDock(t *testing.T) {
	s, d := newTestServer(t)

	callTool(t, s, "set_wallpaper", map[string]any{"value": "linear-gradient(90deg, #000 0%, #fff 100%)"})
	if d.Wallpaper().Kind() != "gradient" || !strings.HasPrefix(d.Wallpaper().Value, "linear-gradient(90deg") {
		t.Errorf("wallpaper = %+v", d.Wallpaper())
	}
	callTool(t, s, "set_wallpaper", nil)
	if !strings.Contains(d.Wallpaper().Value, "#1e1b4b") {
		t.Errorf("empty value should restore the default, got %s", d.Wallpaper().Value)
	}

	callTool(t, s, "pin_app", map[string]any{"app": "asana"})
	if !d.Dock.IsPinned("asana") {
		t.Error("asana should be pinned")
	}

	text, _ := callTool(t, s, "list_windows", nil)
	if !strings.Contains(text, "asana") {
		t.Errorf("list_windows should include the dock:\n%s", text)
	}
}
