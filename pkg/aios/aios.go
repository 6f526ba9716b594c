// Package aios provides the AIOS desktop shell as a reusable Bubble Tea
// model, plus the helpers hosts use to build its desktop.
//
// # Basic Usage
//
// Create a shell backed by an in-memory desktop:
//
//	model := aios.New()
//	p := tea.NewProgram(model, aios.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Persistent Desktop
//
// Open the desktop from the user's configuration so the dock and wallpaper
// survive restarts:
//
//	cfg := aios.Config.DefaultConfig()
//	d, closeState, err := aios.OpenDesktop(cfg, false, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer closeState()
//
//	model := aios.New(
//		aios.WithUserConfig(cfg),
//		aios.WithDesktop(d),
//		aios.WithTheme("dracula"),
//	)
package aios

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/app"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/input"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/registry"
)

// Model is the shell model that implements tea.Model.
type Model = app.OS

// Desktop is the window manager core the shell drives.
type Desktop = desktop.Desktop

// Options configures a shell.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use the built-in palette.
	Theme string

	// ASCIIOnly replaces dock glyphs and window buttons with ASCII.
	ASCIIOnly bool

	// HideClock hides the clock in the status line.
	HideClock bool

	// ShowStats shows CPU and memory usage in the status line.
	ShowStats bool

	// CellWidth and CellHeight are the viewport pixels per terminal cell.
	// Zero uses the user config.
	CellWidth  int
	CellHeight int

	// UserConfig is a custom user configuration. If nil, the user's config
	// file is loaded.
	UserConfig *config.UserConfig

	// Desktop is the desktop to drive. If nil, an in-memory desktop is
	// built from the user config.
	Desktop *desktop.Desktop

	// Logger receives process logs. The shell also keeps its own log ring.
	Logger *log.Logger
}

// Option is a functional option for configuring the shell.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only rendering.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithHideClock hides the status line clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithStats enables or disables the CPU and memory readout.
func WithStats(enabled bool) Option {
	return func(o *Options) {
		o.ShowStats = enabled
	}
}

// WithCellSize sets how many viewport pixels one terminal cell covers.
func WithCellSize(width, height int) Option {
	return func(o *Options) {
		o.CellWidth = width
		o.CellHeight = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithDesktop sets the desktop the shell drives.
func WithDesktop(d *desktop.Desktop) Option {
	return func(o *Options) {
		o.Desktop = d
	}
}

// WithLogger sets the process logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		ShowStats: true,
	}
}

// New creates a shell model with the given options.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:  options.ASCIIOnly,
		HideClock:  options.HideClock,
		NoStats:    !options.ShowStats,
		CellWidth:  options.CellWidth,
		CellHeight: options.CellHeight,
		ThemeName:  options.Theme,
	}, userConfig)

	d := options.Desktop
	if d == nil {
		d = desktop.New(desktop.Options{
			Apps:          BuildRegistry(userConfig, options.Logger),
			State:         persist.NewMemory(),
			DefaultPinned: userConfig.Dock.DefaultPinned,
			Logger:        options.Logger,
		})
	}

	return app.NewOS(app.Options{
		Desktop:  d,
		Keybinds: config.NewKeybindRegistry(userConfig),
		Logger:   options.Logger,
	})
}

// BuildRegistry returns the application registry described by cfg: the
// built-in catalog plus every app file in the apps directory.
func BuildRegistry(cfg *config.UserConfig, logger *log.Logger) *registry.Registry {
	if logger == nil {
		logger = log.Default()
	}
	opts := []registry.Option{
		registry.WithFallback(cfg.Desktop.FallbackApp),
		registry.WithStreamBase(cfg.Desktop.StreamBase),
	}

	dir := cfg.Desktop.AppsDir
	if dir == "" {
		if d, err := registry.GetAppsDir(); err == nil {
			dir = d
		}
	}
	if dir != "" {
		apps, err := registry.LoadCatalog(dir)
		if err != nil {
			logger.Debug("no app catalog", "dir", dir, "err", err)
		} else {
			opts = append(opts, registry.WithApps(apps...))
		}
	}
	return registry.New(opts...)
}

// OpenDesktop opens the configured persistence backend and builds a desktop
// on it. Ephemeral desktops keep their state in memory. The returned
// function closes the backend.
func OpenDesktop(cfg *config.UserConfig, ephemeral bool, logger *log.Logger) (*desktop.Desktop, func() error, error) {
	backend := cfg.Persistence.Backend
	if ephemeral {
		backend = persist.BackendMemory
	}
	state, closeState, err := persist.Open(backend, cfg.Persistence.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s state: %w", backend, err)
	}

	d := desktop.New(desktop.Options{
		Apps:          BuildRegistry(cfg, logger),
		State:         state,
		DefaultPinned: cfg.Dock.DefaultPinned,
		Logger:        logger,
	})
	if _, saved := state.Get(persist.KeyWallpaper); !saved && cfg.Desktop.Wallpaper != "" {
		d.SetWallpaper(cfg.Desktop.Wallpaper)
	}
	return d, closeState, nil
}

// SocketPath returns the control socket path from cfg, or the default one.
func SocketPath(cfg *config.UserConfig) (string, error) {
	if cfg.Control.SocketPath != "" {
		return cfg.Control.SocketPath, nil
	}
	return control.DefaultSocketPath()
}

// AppOpened returns the message that opens appID in a running model the way
// a dock click does. Deliver it with tea.Program.Send.
func AppOpened(appID string) tea.Msg {
	return app.AppOpenedMsg{AppID: appID}
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the shell:
//
//	model := aios.New()
//	p := tea.NewProgram(model, aios.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// nobody is listening to. Motion passes while a window is dragged or
// resized and while the pointer is over the dock, plus the first event
// after it leaves so the dock can settle.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}

	m, ok := model.(*Model)
	if !ok {
		return msg
	}

	if m.Interacting() || m.DockHover {
		return msg
	}
	mouse := motion.Mouse()
	if m.DockBounds().Contains(mouse.X, mouse.Y) {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
