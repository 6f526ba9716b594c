package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Dock        DockConfig          `toml:"dock"`
	Desktop     DesktopConfig       `toml:"desktop"`
	Persistence PersistenceConfig   `toml:"persistence"`
	Control     ControlConfig       `toml:"control"`
	Log         LogConfig           `toml:"log"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme      string `toml:"theme"`       // Color theme name (e.g., dracula, nord, my-custom-theme)
	CellWidth  int    `toml:"cell_width"`  // Viewport pixels per terminal column (default: 8)
	CellHeight int    `toml:"cell_height"` // Viewport pixels per terminal row (default: 16)
	ASCIIOnly  bool   `toml:"ascii_only"`  // Use ASCII initials instead of dock glyphs
	HideClock  bool   `toml:"hide_clock"`  // Hide the clock in the status line
	ShowStats  *bool  `toml:"show_stats"`  // Show CPU and memory usage (default: true)
}

// DockConfig holds dock settings
type DockConfig struct {
	DefaultPinned []string `toml:"default_pinned"` // Apps pinned on first run
}

// DesktopConfig holds window manager settings
type DesktopConfig struct {
	FallbackApp string `toml:"fallback_app"` // App opened for unknown IDs (default: chrome)
	Wallpaper   string `toml:"wallpaper"`    // Initial wallpaper when none is saved
	StreamBase  string `toml:"stream_base"`  // Base URL of the app streaming server
	AppsDir     string `toml:"apps_dir"`     // Extra app definitions (default: $XDG_CONFIG_HOME/aios/apps)
}

// PersistenceConfig selects where dock and wallpaper state is kept
type PersistenceConfig struct {
	Backend string `toml:"backend"` // file, sqlite or memory (default: file)
	Path    string `toml:"path"`    // Custom location (default: $XDG_STATE_HOME/aios/state.*)
}

// ControlConfig holds control socket settings
type ControlConfig struct {
	Disabled   bool   `toml:"disabled"`    // Do not listen on the control socket
	SocketPath string `toml:"socket_path"` // Custom socket path (default: $XDG_RUNTIME_DIR/aios/control.sock)
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error (default: info)
	File  string `toml:"file"`  // Log file used while the shell owns the terminal
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	showStats := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			ShowStats:  &showStats,
		},
		Dock: DockConfig{
			DefaultPinned: []string{"chrome", "gmail", "notion", "slack"},
		},
		Desktop: DesktopConfig{
			FallbackApp: "chrome",
			StreamBase:  "http://localhost:10000",
		},
		Persistence: PersistenceConfig{
			Backend: "file",
		},
		Log: LogConfig{
			Level: "info",
		},
		Keybindings: DefaultKeybindings(),
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("aios/config.toml")
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile parses, completes and validates the config at path.
func LoadUserConfigFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingDesktop(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", e.Field, e.Key, e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, w := range validation.Warnings {
		log.Warn("config", "section", w.Field, "key", w.Key, "msg", w.Message)
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("aios/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path with the documented header.
func WriteConfig(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# AIOS Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings, run: aios keybinds\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: Color theme name. Leave empty for standard terminal colors.\n")
	sb.WriteString("#   Custom themes: ~/.config/aios/themes/*.json\n")
	sb.WriteString("# cell_width / cell_height: viewport pixels per terminal cell.\n")
	sb.WriteString("#   Range: 2 to 64. Default: 8 x 16\n")
	sb.WriteString("#\n")
	sb.WriteString("# DESKTOP\n")
	sb.WriteString("# fallback_app: App opened when an unknown app is requested. Default: chrome\n")
	sb.WriteString("# wallpaper: Image URL or gradient, e.g. linear-gradient(135deg, #111 0%, #333 100%)\n")
	sb.WriteString("# apps_dir: Directory of *.json / *.jsonc app definitions\n")
	sb.WriteString("#\n")
	sb.WriteString("# PERSISTENCE\n")
	sb.WriteString("# backend: file, sqlite or memory. Default: file\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.CellWidth == 0 {
		cfg.Appearance.CellWidth = defaultCfg.Appearance.CellWidth
	}
	if cfg.Appearance.CellHeight == 0 {
		cfg.Appearance.CellHeight = defaultCfg.Appearance.CellHeight
	}
	if cfg.Appearance.ShowStats == nil {
		cfg.Appearance.ShowStats = defaultCfg.Appearance.ShowStats
	}
}

// fillMissingDesktop fills in dock, desktop, persistence and log defaults
func fillMissingDesktop(cfg, defaultCfg *UserConfig) {
	if len(cfg.Dock.DefaultPinned) == 0 {
		cfg.Dock.DefaultPinned = defaultCfg.Dock.DefaultPinned
	}
	if cfg.Desktop.FallbackApp == "" {
		cfg.Desktop.FallbackApp = defaultCfg.Desktop.FallbackApp
	}
	if cfg.Desktop.StreamBase == "" {
		cfg.Desktop.StreamBase = defaultCfg.Desktop.StreamBase
	}
	if cfg.Persistence.Backend == "" {
		cfg.Persistence.Backend = defaultCfg.Persistence.Backend
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for k, v := range defaultCfg.Keybindings {
		if _, exists := cfg.Keybindings[k]; !exists {
			cfg.Keybindings[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile("aios/config.toml")
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile("aios/config.toml")
	}
	return path, nil
}
