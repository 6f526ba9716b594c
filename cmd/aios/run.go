package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/app"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/logging"
	"github.com/nelieo/aios/pkg/aios"
)

// logLevel returns the configured level, forced to debug by --debug.
func logLevel(cfg *config.UserConfig) string {
	if debugMode {
		return "debug"
	}
	return cfg.Log.Level
}

// loadConfig loads the user config, falling back to defaults.
func loadConfig() *config.UserConfig {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	return cfg
}

func runShell() error {
	userConfig := loadConfig()

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:  asciiOnly,
		HideClock:  hideClock,
		NoStats:    noStats,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		ThemeName:  themeName,
	}, userConfig)

	// The terminal belongs to the shell, so process logs go to a file
	logger, logFile, err := logging.OpenFile(userConfig.Log.File, logLevel(userConfig))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
		}
	}()
	log.SetDefault(logger)

	d, closeState, err := aios.OpenDesktop(userConfig, ephemeral, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeState(); closeErr != nil {
			logger.Warn("failed to close state", "err", closeErr)
		}
	}()

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting", "config", configPath, "backend", userConfig.Persistence.Backend, "ephemeral", ephemeral)
	}

	model := aios.New(
		aios.WithUserConfig(userConfig),
		aios.WithDesktop(d),
		aios.WithLogger(logger),
		aios.WithASCIIOnly(asciiOnly),
		aios.WithHideClock(hideClock),
		aios.WithStats(!noStats),
		aios.WithCellSize(cellWidth, cellHeight),
		aios.WithTheme(themeName),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveDone := make(chan struct{})
	if noControl || userConfig.Control.Disabled {
		close(serveDone)
	} else {
		go func() {
			defer close(serveDone)
			serveControl(ctx, userConfig, model, logger)
		}()
	}

	p := tea.NewProgram(
		model,
		append(aios.ProgramOptions(), tea.WithoutSignalHandler())...,
	)

	if len(openApps) > 0 {
		// Send blocks until the event loop is running
		go func() {
			for _, id := range openApps {
				p.Send(aios.AppOpened(id))
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	_, err = p.Run()

	cancel()
	<-serveDone

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// serveControl answers control requests until ctx ends. Requests are
// applied by the shell's update loop, so they never race the UI.
func serveControl(ctx context.Context, cfg *config.UserConfig, model *app.OS, logger *log.Logger) {
	path, err := aios.SocketPath(cfg)
	if err != nil {
		logger.Warn("control socket disabled", "err", err)
		return
	}

	srv := control.NewServer(path, model.ControlHandler(), logger)
	l, err := srv.Listen()
	if err != nil {
		logger.Warn("control socket disabled", "err", err)
		return
	}
	logger.Info("control socket listening", "path", path)

	if err := srv.ServeListener(ctx, l); err != nil {
		logger.Error("control socket failed", "err", err)
	}
}
