// Package main implements AIOS, a desktop shell for streamed applications.
// It runs the window manager in the terminal and exposes it to scripts over
// a control socket and to models over MCP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/nelieo/aios/internal/output"
	"github.com/nelieo/aios/internal/theme"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	asciiOnly    bool
	themeName    string
	listThemes   bool
	cellWidth    int
	cellHeight   int
	ephemeral    bool
	noControl    bool
	hideClock    bool
	noStats      bool
	openApps     []string
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aios",
		Short: "Desktop shell for streamed applications",
		Long: `AIOS - desktop shell for streamed applications

A floating window manager with a dock, edge snapping, app tiling and a grid
layout. Windows host streamed web applications. The running shell can be
driven from scripts over a control socket and from models over MCP.`,
		Example: `  # Run the shell
  aios

  # Run with a theme and without touching saved state
  aios --theme dracula --ephemeral

  # List all available themes
  aios --list-themes

  # Open apps in the running shell
  aios launch gmail notion

  # Show the windows of the running shell as JSON
  aios windows --format json

  # Plan a layout without a terminal
  aios layout --viewport 1440x900 --open chrome,chrome,gmail`,
		Version: version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			output.OutputFormat = f
			output.PrettyOutput = true
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				for _, t := range theme.Available() {
					fmt.Println(t)
				}
				return nil
			}
			return runShell()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "yaml", "Output format for data commands: yaml or json")
	rootCmd.Flags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII initials instead of dock glyphs")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty for the built-in palette")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.Flags().IntVar(&cellWidth, "cell-width", 0, "Viewport pixels per terminal column (default: from config or 8)")
	rootCmd.Flags().IntVar(&cellHeight, "cell-height", 0, "Viewport pixels per terminal row (default: from config or 16)")
	rootCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep dock and wallpaper changes in memory only")
	rootCmd.Flags().BoolVar(&noControl, "no-control", false, "Do not listen on the control socket")
	rootCmd.Flags().BoolVar(&hideClock, "hide-clock", false, "Hide the clock in the status line")
	rootCmd.Flags().BoolVar(&noStats, "no-stats", false, "Hide the CPU and memory readout")
	rootCmd.Flags().StringSliceVar(&openApps, "open", nil, "Apps to open at startup, e.g. gmail,slack")

	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return theme.Available(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(appsCommand(), launchCommand())
	rootCmd.AddCommand(windowCommands()...)
	rootCmd.AddCommand(dockCommand(), wallpaperCommand())
	rootCmd.AddCommand(layoutCommand(), mcpCommand(), playCommand())
	rootCmd.AddCommand(configCommand(), keybindsCommand())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
