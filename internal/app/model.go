// Package app implements the Bubble Tea model hosting a single floating
// window.
package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/input"
	"github.com/Gaurav-Gosain/tuiwin/internal/tape"
	"github.com/Gaurav-Gosain/tuiwin/internal/theme"
	"github.com/Gaurav-Gosain/tuiwin/internal/window"
	"github.com/charmbracelet/log"
)

// ConfigReloadMsg carries a reloaded configuration into the update loop.
type ConfigReloadMsg struct {
	Config *config.Config
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	// Width and Height seed the viewport until the first WindowSizeMsg.
	Width, Height int
	Logger        *log.Logger
	// Recorder, when recording, receives the session as a gesture script.
	Recorder *tape.Recorder
}

// Model hosts one window on a terminal-sized desktop.
type Model struct {
	Document *geometry.Document
	Frame    *window.Frame

	cfg      *config.Config
	registry *config.KeybindRegistry
	palette  theme.Palette
	logger   *log.Logger
	recorder *tape.Recorder

	width, height int
	showHelp      bool

	// Mirrors of the geometry, kept current by the manager's callbacks.
	position geometry.Point
	size     geometry.Size
}

// New builds a model from opts.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithPrefix("app")
	}

	m := &Model{
		Document: geometry.NewDocument(),
		cfg:      cfg,
		registry: config.NewKeybindRegistry(cfg),
		palette:  theme.CurrentPalette(),
		logger:   logger,
		recorder: opts.Recorder,
		width:    opts.Width,
		height:   opts.Height,
	}

	geo := cfg.GeometryOptions()
	geo.Target = m.Document
	geo.Viewport = m.Viewport
	geo.Logger = logger.WithPrefix("geometry")
	geo.OnPositionChange = func(p geometry.Point) { m.position = p }
	geo.OnSizeChange = func(s geometry.Size) { m.size = s }

	m.Frame = window.New(window.Options{
		Title:    cfg.Appearance.Title,
		Geometry: geo,
		OnMaximize: func(maximized bool) {
			m.logger.Debug("maximize toggled", "maximized", maximized)
		},
	})
	m.position = m.Frame.Geometry().Position()
	m.size = m.Frame.Geometry().Size()
	if m.recording() {
		m.recorder.RecordRect(m.Frame.Geometry().Rect())
		m.recorder.RecordLimits(m.Frame.Geometry().Limits())
	}
	m.refreshBody()
	return m
}

func (m *Model) recording() bool {
	return m.recorder != nil && m.recorder.IsRecording()
}

// Viewport is the desktop area available to the window: the terminal minus
// the status bar.
func (m *Model) Viewport() geometry.Size {
	return geometry.Size{Width: m.width, Height: max(0, m.height-config.StatusBarHeight)}
}

// Gesturing reports whether a drag or resize is in progress.
func (m *Model) Gesturing() bool {
	return m.Frame.Geometry().Mode() != geometry.Idle
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.recording() {
			m.recorder.RecordViewport(m.Viewport())
		}

	case ConfigReloadMsg:
		m.applyConfig(msg.Config)
		if m.recording() && msg.Config != nil {
			m.recorder.RecordLimits(m.Frame.Geometry().Limits())
		}

	case tea.KeyPressMsg:
		before := m.windowState()
		action := input.HandleKey(msg, m.registry, m.Frame)
		m.recordStateChange(before)
		switch action {
		case config.ActionQuit:
			return m, m.quit()
		case config.ActionToggleHelp:
			m.showHelp = !m.showHelp
			m.refreshBody()
		}

	case tea.MouseClickMsg:
		if m.Frame.Minimized() && msg.Mouse().Y >= m.height-config.DockHeight {
			m.Frame.Restore()
			m.recordAction(tape.CommandType_Restore)
			break
		}
		if input.HandleMouse(msg, m.Document, m.Frame) && m.recording() {
			m.recorder.RecordPress(mouseEvent(msg))
		}

	case tea.MouseMotionMsg:
		if input.HandleMouse(msg, m.Document, m.Frame) && m.recording() {
			m.recorder.RecordMove(mouseEvent(msg))
		}

	case tea.MouseReleaseMsg:
		if input.HandleMouse(msg, m.Document, m.Frame) && m.recording() {
			m.recorder.RecordRelease(mouseEvent(msg))
		}
	}

	if m.Frame.Closed() {
		return m, m.quit()
	}
	return m, nil
}

func mouseEvent(msg tea.MouseMsg) geometry.MouseEvent {
	mouse := msg.Mouse()
	return geometry.MouseEvent{X: mouse.X, Y: mouse.Y}
}

// windowState is the part of the frame a key binding can change.
type windowState struct {
	maximized, minimized, closed bool
}

func (m *Model) windowState() windowState {
	return windowState{
		maximized: m.Frame.Maximized(),
		minimized: m.Frame.Minimized(),
		closed:    m.Frame.Closed(),
	}
}

// recordStateChange records the window action a key binding performed.
func (m *Model) recordStateChange(before windowState) {
	after := m.windowState()
	switch {
	case after.closed && !before.closed:
		m.recordAction(tape.CommandType_Close)
	case after.minimized && !before.minimized:
		m.recordAction(tape.CommandType_Minimize)
	case before.minimized && !after.minimized:
		m.recordAction(tape.CommandType_Restore)
	case after.maximized != before.maximized:
		m.recordAction(tape.CommandType_Maximize)
	}
}

func (m *Model) recordAction(action tape.CommandType) {
	if !m.recording() {
		return
	}
	if err := m.recorder.RecordAction(action); err != nil {
		m.logger.Warn("recording failed", "err", err)
	}
}

// quit closes the frame, which releases any gesture listeners, and ends the
// program.
func (m *Model) quit() tea.Cmd {
	m.Frame.Close()
	return tea.Quit
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.registry = config.NewKeybindRegistry(cfg)
	m.Frame.Title = cfg.Appearance.Title
	m.Frame.Geometry().SetLimits(cfg.Window.MinSize(), cfg.Window.MaxSize())
	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		m.logger.Warn("failed to initialize theme", "theme", cfg.Appearance.Theme, "err", err)
	}
	m.palette = theme.CurrentPalette()
	m.refreshBody()
	m.logger.Info("configuration applied")
}
