package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/logging"
	"github.com/nelieo/aios/pkg/aios"
)

// requestTimeout bounds one control round trip from the CLI.
const requestTimeout = 5 * time.Second

// cliLogger logs to stderr so stdout stays clean for command output.
func cliLogger() *log.Logger {
	return logging.New(os.Stderr, logLevel(loadConfig()))
}

// remote sends one request to the running shell.
func remote[T any](ctx context.Context, action string, params map[string]any) (T, error) {
	var out T
	path, err := aios.SocketPath(loadConfig())
	if err != nil {
		return out, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := control.NewClient(path).Do(ctx, action, params, &out); err != nil {
		return out, err
	}
	return out, nil
}

// request sends one request to the running shell. When no shell is
// listening it is applied to the persisted desktop instead, so dock and
// wallpaper changes work either way.
func request[T any](ctx context.Context, action string, params map[string]any) (T, error) {
	out, err := remote[T](ctx, action, params)
	if err == nil || !errors.Is(err, control.ErrNotRunning) {
		return out, err
	}

	cfg := loadConfig()
	d, closeState, err := aios.OpenDesktop(cfg, false, cliLogger())
	if err != nil {
		return out, err
	}
	defer func() { _ = closeState() }()

	res, err := control.Apply(d, control.Request{Action: action, Params: params})
	if err != nil {
		return out, err
	}
	typed, ok := res.(T)
	if !ok {
		return out, fmt.Errorf("unexpected %s result %T", action, res)
	}
	return typed, nil
}
