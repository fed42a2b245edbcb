// Package web serves a browser front end for the window manager. The page
// draws one floating panel and forwards real mouse and touch events over a
// websocket; each connection owns its own geometry manager.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/charmbracelet/log"
)

//go:embed static/*
var staticFiles embed.FS

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
	})
}

// SetLogLevel sets the logging level for the web package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Config holds the web server configuration.
type Config struct {
	Address        string           // Address to listen on (default: "localhost:7681")
	MaxConnections int              // Maximum concurrent connections (0 = unlimited)
	AllowOrigins   []string         // Allowed websocket origins (empty = all)
	TLS            bool             // Serve HTTPS with a generated self-signed certificate
	Geometry       geometry.Options // Initial panel geometry in CSS pixels
	Debug          bool             // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Address: "localhost:7681",
		Geometry: geometry.Options{
			InitialPosition: geometry.DefaultPosition,
			InitialSize:     geometry.DefaultSize,
			MinSize:         geometry.DefaultMinSize,
		},
	}
}

// Server is the browser front end.
type Server struct {
	config     Config
	httpServer *http.Server
	sessions   sync.Map // map[string]*Session
	connCount  atomic.Int32
}

// NewServer creates a new web server.
func NewServer(config Config) *Server {
	if config.Address == "" {
		config.Address = DefaultConfig().Address
	}
	if config.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	logger.Info("creating web server",
		"addr", config.Address,
		"tls", config.TLS,
		"max_connections", config.MaxConnections,
	)

	return &Server{config: config}
}

// Handler returns the routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start listens until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	scheme := "http"
	if s.config.TLS {
		host, _, err := net.SplitHostPort(s.config.Address)
		if err != nil {
			return fmt.Errorf("parse address: %w", err)
		}
		tlsConfig, err := selfSignedTLS(host)
		if err != nil {
			return err
		}
		s.httpServer.TLSConfig = tlsConfig
		scheme = "https"
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server ready", "url", fmt.Sprintf("%s://%s", scheme, s.config.Address))
		var err error
		if s.config.TLS {
			err = s.httpServer.ListenAndServeTLS("", "")
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down web server")
		s.closeSessions()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Server) closeSessions() {
	s.sessions.Range(func(key, value any) bool {
		value.(*Session).Close()
		s.sessions.Delete(key)
		return true
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	logger.Debug("serving index", "remote", r.RemoteAddr)

	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

// checkConnectionLimit returns true if connection is allowed.
func (s *Server) checkConnectionLimit() bool {
	if s.config.MaxConnections <= 0 {
		return true
	}
	newCount := s.connCount.Add(1)
	if int(newCount) > s.config.MaxConnections {
		s.connCount.Add(-1)
		logger.Warn("connection limit reached",
			"current", newCount-1,
			"max", s.config.MaxConnections,
		)
		return false
	}
	logger.Debug("connection accepted", "count", newCount)
	return true
}

func (s *Server) releaseConnection() {
	if s.config.MaxConnections <= 0 {
		return
	}
	newCount := s.connCount.Add(-1)
	logger.Debug("connection released", "count", newCount)
}
