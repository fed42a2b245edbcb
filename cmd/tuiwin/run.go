package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/app"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/input"
	"github.com/Gaurav-Gosain/tuiwin/internal/mcp"
	"github.com/Gaurav-Gosain/tuiwin/internal/server"
	"github.com/Gaurav-Gosain/tuiwin/internal/tape"
	"github.com/Gaurav-Gosain/tuiwin/internal/terminal"
	"github.com/Gaurav-Gosain/tuiwin/internal/theme"
	"github.com/Gaurav-Gosain/tuiwin/internal/web"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// loadConfig loads the user config, applies global flags and configures
// logging and theming from it.
func loadConfig() *config.Config {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}

	level := cfg.LogLevel()
	if debugMode {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	web.SetLogLevel(level)

	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		log.Warn("failed to initialize theme", "theme", cfg.Appearance.Theme, "err", err)
	}
	return cfg
}

// logToFile redirects the default logger away from the terminal the TUI is
// drawing on.
func logToFile() (func(), error) {
	path, err := xdg.StateFile(filepath.Join("tuiwin", "tuiwin.log"))
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

func runLocal() error {
	cfg := loadConfig()

	restoreLog, err := logToFile()
	if err != nil {
		log.Warn("logging disabled", "err", err)
		log.SetLevel(log.FatalLevel)
	} else {
		defer restoreLog()
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Warn("failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var recorder *tape.Recorder
	if recordPath != "" {
		recorder = tape.NewRecorder(nil)
		recorder.Start()
	}

	model := app.New(app.Options{Config: cfg, Recorder: recorder})

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(input.MotionFilter(model.Document)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	if configPath, err := config.GetConfigPath(); err == nil {
		log.Debug("watching configuration", "path", configPath)
		go func() {
			err := config.Watch(ctx, configPath, func(c *config.Config) {
				if themeName != "" {
					c.Appearance.Theme = themeName
				}
				p.Send(app.ConfigReloadMsg{Config: c})
			})
			if err != nil {
				log.Warn("config reload disabled", "err", err)
			}
		}()
	}

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Model); ok {
		final.Frame.Close()
	}

	terminal.ResetTerminal()

	if recorder != nil {
		recorder.Stop()
		if werr := recorder.WriteToFile(recordPath, "tuiwin session"); werr != nil {
			return werr
		}
		fmt.Printf("Recorded %d commands to %s\n", recorder.CommandCount(), recordPath)
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// withSignals returns a context cancelled on SIGINT or SIGTERM.
func withSignals() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSSHServer(addr, keyPath string) error {
	cfg := loadConfig()
	if addr == "" {
		addr = cfg.SSH.Address
	}
	if keyPath == "" {
		keyPath = cfg.SSH.HostKeyPath
	}

	ctx, cancel := withSignals()
	defer cancel()

	if err := server.StartSSHServer(ctx, &server.SSHServerConfig{
		Address: addr,
		KeyPath: keyPath,
		App:     cfg,
	}); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(addr string, tls bool, maxConnections int) error {
	cfg := loadConfig()

	webCfg := web.DefaultConfig()
	webCfg.Address = cfg.Web.Address
	if addr != "" {
		webCfg.Address = addr
	}
	webCfg.TLS = tls
	webCfg.MaxConnections = maxConnections
	webCfg.Debug = debugMode

	ctx, cancel := withSignals()
	defer cancel()

	return web.NewServer(webCfg).Start(ctx)
}

func runMCPServer() error {
	loadConfig()

	ctx, cancel := withSignals()
	defer cancel()

	if err := mcp.NewServer(geometry.Options{}).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
