package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/mcp"
	"github.com/nelieo/aios/internal/output"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/pkg/aios"
	"github.com/spf13/cobra"
)

// appRow is one line of `aios apps list`.
type appRow struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Icon      string `json:"icon" yaml:"icon"`
	URL       string `json:"url" yaml:"url"`
	StreamURL string `json:"stream_url,omitempty" yaml:"stream_url,omitempty"`
	Pinned    bool   `json:"pinned" yaml:"pinned"`
}

func appsCommand() *cobra.Command {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect the application catalog",
		Long: `Inspect the application catalog

The catalog is the built-in application list plus every .json or .jsonc file
in the apps directory ($XDG_CONFIG_HOME/aios/apps by default).`,
	}

	appsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered application",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := loadConfig()
			logger := cliLogger()
			d, closeState, err := aios.OpenDesktop(cfg, false, logger)
			if err != nil {
				return err
			}
			defer func() { _ = closeState() }()

			var rows []appRow
			for _, a := range d.Apps.Apps() {
				row := appRow{
					ID:     a.ID,
					Name:   a.DisplayName,
					Icon:   a.Icon,
					URL:    a.URL,
					Pinned: d.Dock.IsPinned(a.ID),
				}
				if p := a.Payload(); p.URL != a.URL {
					row.StreamURL = p.URL
				}
				rows = append(rows, row)
			}
			return output.Print(rows)
		},
	}

	appsCmd.AddCommand(appsListCmd)
	return appsCmd
}

func launchCommand() *cobra.Command {
	var all bool

	launchCmd := &cobra.Command{
		Use:   "launch <app>...",
		Short: "Open applications in the running shell",
		Long: `Open applications in the running shell

Each app is opened exactly as if its dock icon had been clicked. Unknown
apps open the fallback application.`,
		Example: `  # Open two apps
  aios launch gmail notion

  # Open every app in the catalog
  aios launch --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all takes no app names")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one app, or use --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				windows, err := remote[[]desktop.Window](cmd.Context(), control.ActionLaunchAll, nil)
				if err != nil {
					return err
				}
				return output.Print(windows)
			}

			var opened []desktop.Window
			for _, id := range args {
				w, err := remote[desktop.Window](cmd.Context(), control.ActionAppOpened, map[string]any{"app": id})
				if err != nil {
					return err
				}
				opened = append(opened, w)
			}
			return output.Print(opened)
		},
	}
	launchCmd.Flags().BoolVar(&all, "all", false, "Open every application in the catalog")
	return launchCmd
}

// windowCommands returns the commands that act on the running shell's windows.
func windowCommands() []*cobra.Command {
	windowsCmd := &cobra.Command{
		Use:     "windows",
		Aliases: []string{"ls"},
		Short:   "List the windows of the running shell",
		Example: `  aios windows
  aios windows --format json | jq '.focused'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := remote[desktop.Snapshot](cmd.Context(), control.ActionList, nil)
			if err != nil {
				return err
			}
			return output.Print(snap)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the shell is running",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pong, err := remote[control.Pong](cmd.Context(), control.ActionPing, nil)
			if err != nil {
				return err
			}
			return output.Print(pong)
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <id|title|app>",
		Short: "Focus a window, restoring it if minimized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printWindow(cmd, control.ActionSwitch, map[string]any{"target": args[0]})
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close [id|title|app]",
		Short: "Close a window (default: the focused one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printWindow(cmd, control.ActionClose, targetParams(args))
		},
	}

	var restore bool
	minimizeCmd := &cobra.Command{
		Use:   "minimize [id|title|app]",
		Short: "Minimize a window (default: the focused one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := targetParams(args)
			if restore {
				params["restore"] = true
			}
			return printWindow(cmd, control.ActionMinimize, params)
		},
	}
	minimizeCmd.Flags().BoolVar(&restore, "restore", false, "Restore the window instead")

	maximizeCmd := &cobra.Command{
		Use:   "maximize [id|title|app]",
		Short: "Toggle maximize on a window (default: the focused one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printWindow(cmd, control.ActionMaximize, targetParams(args))
		},
	}

	arrangeCmd := &cobra.Command{
		Use:   "arrange",
		Short: "Arrange every window on a grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			windows, err := remote[[]desktop.Window](cmd.Context(), control.ActionArrange, nil)
			if err != nil {
				return err
			}
			return output.Print(windows)
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore every minimized window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			windows, err := remote[[]desktop.Window](cmd.Context(), control.ActionRestoreAll, nil)
			if err != nil {
				return err
			}
			return output.Print(windows)
		},
	}

	return []*cobra.Command{windowsCmd, statusCmd, switchCmd, closeCmd, minimizeCmd, maximizeCmd, arrangeCmd, restoreCmd}
}

func targetParams(args []string) map[string]any {
	params := map[string]any{}
	if len(args) > 0 {
		params["target"] = args[0]
	}
	return params
}

func printWindow(cmd *cobra.Command, action string, params map[string]any) error {
	w, err := remote[desktop.Window](cmd.Context(), action, params)
	if err != nil {
		return err
	}
	return output.Print(w)
}

func dockCommand() *cobra.Command {
	dockCmd := &cobra.Command{
		Use:   "dock",
		Short: "Manage the pinned dock applications",
		Long: `Manage the pinned dock applications

Changes go to the running shell when there is one, otherwise straight to the
saved state.`,
	}

	dockListCmd := &cobra.Command{
		Use:   "list",
		Short: "List pinned applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := request[control.DockState](cmd.Context(), control.ActionDock, nil)
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	dockPinCmd := &cobra.Command{
		Use:   "pin <app>",
		Short: "Pin an application to the end of the dock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := request[control.DockState](cmd.Context(), control.ActionPin, map[string]any{"app": args[0]})
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	dockUnpinCmd := &cobra.Command{
		Use:   "unpin <app>",
		Short: "Remove an application from the dock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := request[control.DockState](cmd.Context(), control.ActionUnpin, map[string]any{"app": args[0]})
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	dockCmd.AddCommand(dockListCmd, dockPinCmd, dockUnpinCmd)
	return dockCmd
}

func wallpaperCommand() *cobra.Command {
	wallpaperCmd := &cobra.Command{
		Use:   "wallpaper",
		Short: "Show or change the desktop wallpaper",
		Long: `Show or change the desktop wallpaper

A wallpaper is an image URL or a CSS gradient such as
"linear-gradient(135deg, #1e1b4b 0%, #0f172a 100%)".`,
	}

	wallpaperGetCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current wallpaper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := request[control.WallpaperState](cmd.Context(), control.ActionWallpaper, nil)
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	wallpaperSetCmd := &cobra.Command{
		Use:   "set <url|gradient>",
		Short: "Change the wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := request[control.WallpaperState](cmd.Context(), control.ActionWallpaper, map[string]any{"value": args[0]})
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	wallpaperResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default wallpaper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := request[control.WallpaperState](cmd.Context(), control.ActionWallpaper, map[string]any{"reset": true})
			if err != nil {
				return err
			}
			return output.Print(state)
		},
	}

	wallpaperCmd.AddCommand(wallpaperGetCmd, wallpaperSetCmd, wallpaperResetCmd)
	return wallpaperCmd
}

// parseViewport parses "1440x900".
func parseViewport(s string) (geometry.Viewport, error) {
	var vp geometry.Viewport
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &vp.Width, &vp.Height); err != nil || vp.Width <= 0 || vp.Height <= 0 {
		return geometry.Viewport{}, fmt.Errorf("invalid viewport %q (want WIDTHxHEIGHT)", s)
	}
	return vp, nil
}

func layoutCommand() *cobra.Command {
	var (
		viewport string
		open     []string
		grid     bool
	)

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Plan a window layout without a terminal",
		Long: `Plan a window layout without a terminal

Opens the given apps on an in-memory desktop of the given size and prints the
resulting windows. Nothing is saved.`,
		Example: `  # Two chrome windows tile side by side
  aios layout --viewport 1440x900 --open chrome,chrome,gmail

  # Then arrange everything on a grid
  aios layout --viewport 1440x900 --open chrome,chrome,gmail --grid`,
		RunE: func(_ *cobra.Command, _ []string) error {
			vp, err := parseViewport(viewport)
			if err != nil {
				return err
			}
			d := planLayout(vp, open, grid)
			return output.Print(d.Snapshot())
		},
	}
	layoutCmd.Flags().StringVar(&viewport, "viewport", "1440x900", "Viewport size in pixels")
	layoutCmd.Flags().StringSliceVar(&open, "open", nil, "Apps to open, in order")
	layoutCmd.Flags().BoolVar(&grid, "grid", false, "Arrange the windows on a grid afterwards")
	return layoutCmd
}

func planLayout(vp geometry.Viewport, open []string, grid bool) *desktop.Desktop {
	cfg := loadConfig()
	d := desktop.New(desktop.Options{
		Apps:          aios.BuildRegistry(cfg, cliLogger()),
		State:         persist.NewMemory(),
		Viewport:      vp,
		DefaultPinned: cfg.Dock.DefaultPinned,
		Logger:        cliLogger(),
	})
	for _, id := range open {
		d.Launch(strings.TrimSpace(id))
	}
	if grid {
		d.Store.ArrangeGrid()
	}
	return d
}

func mcpCommand() *cobra.Command {
	var (
		httpAddr string
		headless bool
		viewport string
	)

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the desktop as MCP tools",
		Long: `Serve the desktop as Model Context Protocol tools

By default the tools drive the running shell through its control socket.
When no shell is running, or with --headless, they drive an in-process
desktop that uses the saved dock and wallpaper.`,
		Example: `  # Serve over stdio
  aios mcp

  # Serve over streamable HTTP
  aios mcp --http :8080

  # Drive a headless desktop
  aios mcp --headless --viewport 1920x1080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := cliLogger()
			cfg := loadConfig()

			var handler control.Handler
			if !headless {
				if _, err := remote[control.Pong](cmd.Context(), control.ActionPing, nil); err == nil {
					path, _ := aios.SocketPath(cfg)
					logger.Info("forwarding to the running shell", "socket", path)
					handler = mcp.Forward(control.NewClient(path))
				} else {
					logger.Info("no running shell, serving a headless desktop", "err", err)
				}
			}

			if handler == nil {
				vp, err := parseViewport(viewport)
				if err != nil {
					return err
				}
				d, closeState, err := aios.OpenDesktop(cfg, false, logger)
				if err != nil {
					return err
				}
				defer func() { _ = closeState() }()
				d.Resize(vp)
				handler = control.Serialized(d, &sync.Mutex{})
			}

			transport := mcp.TransportStdio
			if httpAddr != "" {
				transport = mcp.TransportHTTP
				logger.Info("serving MCP", "addr", httpAddr)
			}
			return mcp.New(handler, version).Serve(mcp.Config{
				Transport: transport,
				Addr:      httpAddr,
				Version:   version,
			})
		},
	}
	mcpCmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio")
	mcpCmd.Flags().BoolVar(&headless, "headless", false, "Always drive an in-process desktop")
	mcpCmd.Flags().StringVar(&viewport, "viewport", "1440x900", "Viewport of the headless desktop")
	return mcpCmd
}
