package tape

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/control"
)

// Executor plays parsed commands against a desktop through a control
// handler. The handler may be the running shell's socket client or a
// handler over a local desktop.
type Executor struct {
	handler control.Handler
	logger  *log.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an executor that sends requests to handler.
func NewExecutor(handler control.Handler, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{handler: handler, logger: logger, sleep: sleepCtx}
}

// Run executes cmds in order and stops at the first failure.
func (e *Executor) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Debug("tape", "line", cmd.Line, "cmd", cmd.String())
		if err := e.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("line %d (%s): %w", cmd.Line, cmd.Type, err)
		}
	}
	return nil
}

// Execute runs a single command.
func (e *Executor) Execute(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandTypeSleep:
		d, err := time.ParseDuration(cmd.Args[0])
		if err != nil {
			return err
		}
		return e.sleep(ctx, d)

	case CommandTypeLaunch:
		for _, app := range cmd.Args {
			if err := e.send(ctx, control.ActionAppOpened, map[string]any{"app": app}); err != nil {
				return err
			}
		}
		return nil

	case CommandTypeLaunchAll:
		return e.send(ctx, control.ActionLaunchAll, nil)

	case CommandTypeFocus:
		return e.send(ctx, control.ActionSwitch, target(cmd.Args))

	case CommandTypeClose:
		return e.send(ctx, control.ActionClose, target(cmd.Args))

	case CommandTypeMinimize:
		return e.send(ctx, control.ActionMinimize, target(cmd.Args))

	case CommandTypeRestore:
		p := target(cmd.Args)
		p["restore"] = true
		return e.send(ctx, control.ActionMinimize, p)

	case CommandTypeRestoreAll:
		return e.send(ctx, control.ActionRestoreAll, nil)

	case CommandTypeMaximize:
		return e.send(ctx, control.ActionMaximize, target(cmd.Args))

	case CommandTypeMove:
		x, y, err := pair(cmd.Args[1], cmd.Args[2])
		if err != nil {
			return err
		}
		return e.send(ctx, control.ActionMove, map[string]any{"target": cmd.Args[0], "x": x, "y": y, "snap": true})

	case CommandTypeResize:
		w, h, err := pair(cmd.Args[1], cmd.Args[2])
		if err != nil {
			return err
		}
		return e.send(ctx, control.ActionResize, map[string]any{"target": cmd.Args[0], "width": w, "height": h})

	case CommandTypeArrange:
		return e.send(ctx, control.ActionArrange, nil)

	case CommandTypePin:
		return e.send(ctx, control.ActionPin, map[string]any{"app": cmd.Args[0]})

	case CommandTypeUnpin:
		return e.send(ctx, control.ActionUnpin, map[string]any{"app": cmd.Args[0]})

	case CommandTypeWallpaper:
		if len(cmd.Args) == 0 {
			return e.send(ctx, control.ActionWallpaper, map[string]any{"reset": true})
		}
		return e.send(ctx, control.ActionWallpaper, map[string]any{"value": cmd.Args[0]})
	}
	return fmt.Errorf("unsupported command %q", cmd.Type)
}

func (e *Executor) send(ctx context.Context, action string, params map[string]any) error {
	_, err := e.handler(ctx, control.Request{Action: action, Params: params})
	return err
}

func target(args []string) map[string]any {
	p := map[string]any{}
	if len(args) > 0 && args[0] != "" {
		p["target"] = args[0]
	}
	return p
}

func pair(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", b)
	}
	return x, y, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
