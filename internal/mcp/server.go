// Package mcp exposes the geometry engine to MCP clients over stdio, so an
// agent can replay gesture scripts and compute resizes without a terminal.
package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/tape"
	"github.com/charmbracelet/log"
)

const (
	ServerName    = "tuiwin"
	ServerVersion = "0.1.0"
)

// DefaultViewport is used when a replay does not name one.
var DefaultViewport = geometry.Size{Width: 1920, Height: 1080}

// Server is the MCP server.
type Server struct {
	mcpServer *mcpsdk.Server
	geometry  geometry.Options
	logger    *log.Logger
}

// NewServer creates a server. Every replay starts a fresh window from opts;
// the zero value gives the engine defaults at DefaultPosition.
func NewServer(opts geometry.Options) *Server {
	if opts.InitialPosition == (geometry.Point{}) && opts.InitialSize.IsZero() {
		opts.InitialPosition = geometry.DefaultPosition
	}
	s := &Server{
		geometry: opts,
		logger:   log.WithPrefix("mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run serves on stdio, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "replay_gestures",
		Description: "Replay a gesture script against a headless window and return the window position, size, mode and attached listener count after every command. Expect commands assert state; the first failed one stops the replay and is reported in failure.",
	}, s.handleReplay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "compute_resize",
		Description: "Compute the rectangle produced by dragging one resize handle. Sizes are clamped to the bounds and the edge opposite the handle stays fixed.",
	}, s.handleResize)
}

func (s *Server) handleReplay(ctx context.Context, _ *mcpsdk.CallToolRequest, args ReplayInput) (*mcpsdk.CallToolResult, ReplayOutput, error) {
	viewport := geometry.Size{Width: args.ViewportWidth, Height: args.ViewportHeight}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = DefaultViewport
	}

	steps, err := tape.Replay(ctx, args.Script, tape.ExecutorOptions{
		Geometry: s.geometry,
		Viewport: viewport,
		Logger:   s.logger,
	})
	out := ReplayOutput{Steps: steps}
	switch {
	case errors.Is(err, tape.ErrExpectation):
		out.Failure = err.Error()
	case err != nil:
		return nil, ReplayOutput{}, err
	}
	if out.Steps == nil {
		out.Steps = []tape.Step{}
	}

	s.logger.Debug("replayed script", "steps", len(out.Steps), "failed", out.Failure != "")
	return nil, out, nil
}

func (s *Server) handleResize(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeInput) (*mcpsdk.CallToolResult, ResizeOutput, error) {
	dir, err := geometry.ParseDirection(args.Direction)
	if err != nil {
		return nil, ResizeOutput{}, err
	}
	if dir == geometry.DirNone {
		return nil, ResizeOutput{}, fmt.Errorf("direction is required")
	}

	bounds := geometry.Bounds{
		Min: geometry.Size{Width: args.MinWidth, Height: args.MinHeight},
		Max: geometry.Size{Width: args.MaxWidth, Height: args.MaxHeight},
	}
	if bounds.Min.IsZero() {
		bounds.Min = geometry.DefaultMinSize
	}
	if bounds.Max.Width <= 0 {
		bounds.Max.Width = geometry.Unbounded
	}
	if bounds.Max.Height <= 0 {
		bounds.Max.Height = geometry.Unbounded
	}

	origin := geometry.Rect{
		Point: geometry.Point{X: args.X, Y: args.Y},
		Size:  geometry.Size{Width: args.Width, Height: args.Height},
	}
	r := geometry.Resize(origin, dir, geometry.Point{X: args.DeltaX, Y: args.DeltaY}, bounds)

	return nil, ResizeOutput{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}
