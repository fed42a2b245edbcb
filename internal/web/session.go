package web

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/google/uuid"
)

// ErrUnknownMessage is returned for a client message that cannot be applied.
var ErrUnknownMessage = errors.New("unknown message")

// Client message types.
const (
	MsgViewport    = "viewport"
	MsgMouseDown   = "mousedown"
	MsgMouseMove   = "mousemove"
	MsgMouseUp     = "mouseup"
	MsgTouchStart  = "touchstart"
	MsgTouchMove   = "touchmove"
	MsgTouchEnd    = "touchend"
	MsgTouchCancel = "touchcancel"
)

// Regions a pointer-down can land on.
const (
	RegionTitleBar = "titlebar"
	RegionHandle   = "handle"
)

// ClientMessage is one browser event.
type ClientMessage struct {
	Type    string             `json:"type"`
	Region  string             `json:"region,omitempty"`
	Dir     geometry.Direction `json:"dir,omitempty"`
	X       int                `json:"x"`
	Y       int                `json:"y"`
	Touches []geometry.Touch   `json:"touches,omitempty"`
	Width   int                `json:"width,omitempty"`
	Height  int                `json:"height,omitempty"`
}

// pointer converts the message into the event the geometry layer expects.
func (m ClientMessage) pointer() geometry.PointerEvent {
	if len(m.Touches) > 0 || m.Type == MsgTouchStart || m.Type == MsgTouchMove ||
		m.Type == MsgTouchEnd || m.Type == MsgTouchCancel {
		return geometry.TouchEvent{Touches: m.Touches}
	}
	return geometry.MouseEvent{X: m.X, Y: m.Y}
}

// Snapshot is the panel geometry sent back after every message.
type Snapshot struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Mode      string `json:"mode"`
	Direction string `json:"direction,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Session is the geometry state of one browser connection.
type Session struct {
	ID        string
	doc       *geometry.Document
	geo       *geometry.Manager
	viewport  geometry.Size
	mu        sync.Mutex
	closed    bool
	startTime time.Time
}

// NewSession creates a session seeded from opts. The session owns the
// event target and viewport; those fields of opts are ignored.
func NewSession(opts geometry.Options) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		doc:       geometry.NewDocument(),
		startTime: time.Now(),
	}
	opts.Target = s.doc
	opts.Viewport = func() geometry.Size { return s.viewport }
	if opts.Logger == nil {
		opts.Logger = logger.With("session", s.ID)
	}
	s.geo = geometry.NewManager(opts)
	return s
}

// Apply feeds one client message to the geometry manager.
func (s *Session) Apply(msg ClientMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("session %s is closed", s.ID)
	}

	switch msg.Type {
	case MsgViewport:
		s.viewport = geometry.Size{Width: msg.Width, Height: msg.Height}
	case MsgMouseDown, MsgTouchStart:
		return s.press(msg)
	case MsgMouseMove:
		s.doc.Dispatch(geometry.EventMouseMove, msg.pointer())
	case MsgMouseUp:
		s.doc.Dispatch(geometry.EventMouseUp, msg.pointer())
	case MsgTouchMove:
		s.doc.Dispatch(geometry.EventTouchMove, msg.pointer())
	case MsgTouchEnd:
		s.doc.Dispatch(geometry.EventTouchEnd, msg.pointer())
	case MsgTouchCancel:
		s.doc.Dispatch(geometry.EventTouchCancel, msg.pointer())
	default:
		return fmt.Errorf("%w type %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func (s *Session) press(msg ClientMessage) error {
	switch msg.Region {
	case RegionTitleBar:
		s.geo.BeginDrag(msg.pointer())
	case RegionHandle:
		if msg.Dir == geometry.DirNone {
			return fmt.Errorf("%w: handle press without a direction", ErrUnknownMessage)
		}
		s.geo.BeginResize(msg.pointer(), msg.Dir)
	default:
		return fmt.Errorf("%w region %q", ErrUnknownMessage, msg.Region)
	}
	return nil
}

// Snapshot returns the current geometry.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.geo.Rect()
	snap := Snapshot{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Mode:   s.geo.Mode().String(),
	}
	if dir := s.geo.ActiveResizeDirection(); dir != geometry.DirNone {
		snap.Direction = dir.String()
	}
	return snap
}

// Listeners returns the number of global listeners currently attached.
func (s *Session) Listeners() int {
	return s.doc.Len()
}

// Close ends any gesture and detaches its listeners. It is safe to call more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.geo.Close()
}
