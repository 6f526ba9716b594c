package config

import (
	"fmt"
	"sort"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// Actions understood by the shell. The keys of a user's [keybindings] table
// must be one of these.
const (
	ActionNextWindow     = "next_window"
	ActionPrevWindow     = "prev_window"
	ActionCloseWindow    = "close_window"
	ActionMinimizeWindow = "minimize_window"
	ActionRestoreAll     = "restore_all"
	ActionToggleMaximize = "toggle_maximize"
	ActionArrangeGrid    = "arrange_grid"
	ActionLaunchAll      = "launch_all"
	ActionLaunchDock     = "launch_dock"
	ActionDockNext       = "dock_next"
	ActionDockPrev       = "dock_prev"
	ActionMoveLeft       = "move_left"
	ActionMoveRight      = "move_right"
	ActionMoveUp         = "move_up"
	ActionMoveDown       = "move_down"
	ActionGrowWidth      = "grow_width"
	ActionShrinkWidth    = "shrink_width"
	ActionGrowHeight     = "grow_height"
	ActionShrinkHeight   = "shrink_height"
	ActionToggleHelp     = "toggle_help"
	ActionToggleLogs     = "toggle_logs"
	ActionQuit           = "quit"
)

// DefaultKeybindings returns the action to keys table used when the user
// config leaves an action out.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionNextWindow:     {"tab"},
		ActionPrevWindow:     {"shift+tab"},
		ActionCloseWindow:    {"x", "ctrl+w"},
		ActionMinimizeWindow: {"m"},
		ActionRestoreAll:     {"r", "M"},
		ActionToggleMaximize: {"f"},
		ActionArrangeGrid:    {"g"},
		ActionLaunchAll:      {"A"},
		ActionLaunchDock:     {"n", "enter"},
		ActionDockNext:       {"]"},
		ActionDockPrev:       {"["},
		ActionMoveLeft:       {"h", "left"},
		ActionMoveRight:      {"l", "right"},
		ActionMoveUp:         {"k", "up"},
		ActionMoveDown:       {"j", "down"},
		ActionGrowWidth:      {"L", "shift+right"},
		ActionShrinkWidth:    {"H", "shift+left"},
		ActionGrowHeight:     {"J", "shift+down"},
		ActionShrinkHeight:   {"K", "shift+up"},
		ActionToggleHelp:     {"?"},
		ActionToggleLogs:     {"ctrl+l"},
		ActionQuit:           {"q", "ctrl+c"},
	}
}

// KeybindRegistry maps pressed keys to actions and back.
type KeybindRegistry struct {
	actions map[string][]string
	byKey   map[string]string
}

// NewKeybindRegistry builds a registry from the user's keybindings, using
// defaults for anything the config leaves out.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	actions := DefaultKeybindings()
	if cfg != nil {
		for action, keys := range cfg.Keybindings {
			actions[action] = keys
		}
	}

	r := &KeybindRegistry{
		actions: actions,
		byKey:   make(map[string]string),
	}
	// Sorted so that a key bound twice resolves the same way every run
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, key := range actions[name] {
			if _, taken := r.byKey[key]; !taken {
				r.byKey[key] = name
			}
		}
	}
	return r
}

// GetAction returns the action bound to key, or "" when unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	if r == nil {
		return ""
	}
	return r.byKey[key]
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	if r == nil {
		return nil
	}
	return r.actions[action]
}

// GetKeysForDisplay formats the keys bound to action for the help overlay.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	display := make([]string, 0, len(keys))
	for _, k := range keys {
		display = append(display, FormatKey(k))
	}
	return strings.Join(display, ", ")
}

// FormatKey turns "shift+tab" into "Shift+Tab".
func FormatKey(key string) string {
	if len(key) == 1 {
		return key
	}
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		default:
			if len(p) > 1 {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}

// GetKeybindings returns all keybinding sections for the help overlay
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, ActionNextWindow, "Focus next window")
	addBinding(&windows, registry, ActionPrevWindow, "Focus previous window")
	addBinding(&windows, registry, ActionCloseWindow, "Close window")
	addBinding(&windows, registry, ActionMinimizeWindow, "Minimize window")
	addBinding(&windows, registry, ActionRestoreAll, "Restore all")
	addBinding(&windows, registry, ActionToggleMaximize, "Maximize / restore")

	layout := KeybindingSection{Title: "LAYOUT"}
	addBinding(&layout, registry, ActionArrangeGrid, "Arrange in grid")
	addBinding(&layout, registry, ActionMoveLeft, "Move left")
	addBinding(&layout, registry, ActionMoveRight, "Move right")
	addBinding(&layout, registry, ActionMoveUp, "Move up")
	addBinding(&layout, registry, ActionMoveDown, "Move down")
	addBinding(&layout, registry, ActionGrowWidth, "Wider")
	addBinding(&layout, registry, ActionShrinkWidth, "Narrower")
	addBinding(&layout, registry, ActionGrowHeight, "Taller")
	addBinding(&layout, registry, ActionShrinkHeight, "Shorter")

	apps := KeybindingSection{Title: "APPS"}
	apps.Bindings = append(apps.Bindings, Keybinding{"1-9", "Launch pinned app"})
	addBinding(&apps, registry, ActionDockPrev, "Select previous dock icon")
	addBinding(&apps, registry, ActionDockNext, "Select next dock icon")
	addBinding(&apps, registry, ActionLaunchDock, "Launch selected dock icon")
	addBinding(&apps, registry, ActionLaunchAll, "Launch every app")

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, ActionToggleHelp, "Toggle help")
	addBinding(&system, registry, ActionToggleLogs, "Toggle log viewer")
	addBinding(&system, registry, ActionQuit, "Quit")

	sections := []KeybindingSection{windows, layout, apps, system, getMouseHelpSection()}
	out := sections[:0]
	for _, s := range sections {
		if len(s.Bindings) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

func getMouseHelpSection() KeybindingSection {
	return KeybindingSection{
		Title: "MOUSE",
		Bindings: []Keybinding{
			{"Click", "Focus window / launch dock icon"},
			{"Drag title", "Move (release near an edge to snap)"},
			{"Drag corner", "Resize"},
			{"Right click dock", "Unpin app"},
			{"− □ ×", "Minimize, maximize, close"},
		},
	}
}

// FormatKeybindings renders sections as plain text for the keybinds command.
func FormatKeybindings(sections []KeybindingSection) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Title + "\n")
		for _, b := range s.Bindings {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", b.Key, b.Description))
		}
	}
	return sb.String()
}
