package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/mcp"
	"github.com/nelieo/aios/internal/output"
	"github.com/nelieo/aios/internal/tape"
	"github.com/nelieo/aios/pkg/aios"
	"github.com/spf13/cobra"
)

func playCommand() *cobra.Command {
	var (
		headless bool
		viewport string
	)

	playCmd := &cobra.Command{
		Use:   "play <script>",
		Short: "Play a desktop script",
		Long: `Play a desktop script against the running shell

A script has one command per line. Lines starting with # are comments.

  Launch <app>...        Open apps in order
  LaunchAll              Open every registered app
  Focus <window>         Focus or restore a window
  Close [window]         Close a window, the focused one by default
  Minimize [window]      Minimize a window
  Restore [window]       Restore a minimized window
  RestoreAll             Restore every minimized window
  Maximize [window]      Toggle maximize
  Move <window> <x> <y>  Move a window, snapping at the edges
  Resize <window> <w> <h>
  Arrange                Arrange windows in a grid
  Pin <app>, Unpin <app> Change the dock
  Wallpaper [value]      Set the wallpaper, or reset it with no value
  Sleep <duration>       Wait, e.g. 500ms or 2s

With --headless the script runs against an in-process desktop and the
final state is printed.`,
		Example: `  aios play morning.tape
  aios play --headless --format json layout.tape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			cmds, err := tape.Parse(f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			logger := cliLogger()
			cfg := loadConfig()

			if !headless {
				path, err := aios.SocketPath(cfg)
				if err != nil {
					return err
				}
				return tape.NewExecutor(mcp.Forward(control.NewClient(path)), logger).Run(cmd.Context(), cmds)
			}

			vp, err := parseViewport(viewport)
			if err != nil {
				return err
			}
			d, closeState, err := aios.OpenDesktop(cfg, true, logger)
			if err != nil {
				return err
			}
			defer func() { _ = closeState() }()
			d.Resize(vp)

			if err := tape.NewExecutor(control.Serialized(d, &sync.Mutex{}), logger).Run(cmd.Context(), cmds); err != nil {
				return err
			}
			return output.Print(d.Snapshot())
		},
	}
	playCmd.Flags().BoolVar(&headless, "headless", false, "Run against an in-process desktop and print the result")
	playCmd.Flags().StringVar(&viewport, "viewport", "1440x900", "Viewport of the headless desktop")
	return playCmd
}
