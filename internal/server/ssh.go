// Package server serves the window manager over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/tuiwin/internal/app"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/input"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

var logger = log.WithPrefix("ssh")

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address string
	KeyPath string
	// App is shared read-only by every session.
	App *config.Config
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.App == nil {
		cfg.App = config.DefaultConfig()
	}

	hostKeyPath, err := resolveKeyPath(cfg.KeyPath)
	if err != nil {
		return err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg.App)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", cfg.Address, "host_key", hostKeyPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errChan <- fmt.Errorf("SSH server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		return err
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// resolveKeyPath places relative host key paths under the home directory.
func resolveKeyPath(path string) (string, error) {
	if path == "" {
		path = config.DefaultConfig().SSH.HostKeyPath
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path), nil
}

// teaHandler creates one window model per SSH session, sized to its PTY.
func teaHandler(cfg *config.Config) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "tuiwin needs an interactive terminal; connect with ssh -t")
			return nil, nil
		}

		model := app.New(app.Options{
			Config: cfg,
			Width:  pty.Window.Width,
			Height: pty.Window.Height,
			Logger: logger.With("user", sess.User(), "remote", sess.RemoteAddr()),
		})

		return model, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
			tea.WithFilter(input.MotionFilter(model.Document)),
		}
	}
}
