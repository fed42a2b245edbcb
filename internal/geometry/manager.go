package geometry

import (
	"github.com/charmbracelet/log"
)

// Mode is the interaction state of a Manager.
type Mode int

const (
	// Idle means no gesture is in progress.
	Idle Mode = iota
	// Dragging means the window follows the pointer.
	Dragging
	// Resizing means one of the eight handles follows the pointer.
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// Defaults used when Options leaves a size unset.
var (
	DefaultPosition = Point{X: 100, Y: 100}
	DefaultSize     = Size{Width: 600, Height: 400}
	DefaultMinSize  = Size{Width: 300, Height: 200}
)

// Options configures a Manager.
type Options struct {
	// InitialPosition seeds the position. The zero value is the origin.
	InitialPosition Point
	// InitialSize seeds the size; DefaultSize when zero.
	InitialSize Size
	// MinSize is the smallest size a resize may produce; DefaultMinSize when zero.
	MinSize Size
	// MaxSize is the largest size a resize may produce. A non-positive axis
	// falls back to the viewport.
	MaxSize Size
	// Viewport reports the current viewport size. It is read at the start of
	// every resize gesture. Nil means axes without MaxSize are unbounded.
	Viewport func() Size
	// Target is the global scope move and end listeners attach to while a
	// gesture is active. A private Document is created when nil.
	Target EventTarget
	// OnPositionChange and OnSizeChange are called synchronously after every
	// committed update.
	OnPositionChange func(Point)
	OnSizeChange     func(Size)
	// Logger defaults to the "geometry" prefixed default logger.
	Logger *log.Logger
}

// gesture is the state of one drag or resize, from pointer-down to release.
type gesture struct {
	mode    Mode
	dir     Direction
	start   Point
	origin  Rect
	bounds  Bounds
	tracker tracker
	release func()
}

// Manager is the single source of truth for one window's geometry. It is not
// safe for concurrent use; drive it from one goroutine, as a UI event loop
// would.
type Manager struct {
	opts   Options
	rect   Rect
	active *gesture
	target EventTarget
	logger *log.Logger
}

// NewManager creates a manager seeded from opts.
func NewManager(opts Options) *Manager {
	if opts.InitialSize.IsZero() {
		opts.InitialSize = DefaultSize
	}
	if opts.MinSize.IsZero() {
		opts.MinSize = DefaultMinSize
	}
	if opts.Target == nil {
		opts.Target = NewDocument()
	}
	if opts.Logger == nil {
		opts.Logger = log.WithPrefix("geometry")
	}

	m := &Manager{
		opts:   opts,
		rect:   Rect{Point: opts.InitialPosition, Size: opts.InitialSize},
		target: opts.Target,
		logger: opts.Logger,
	}
	if b := m.Bounds(); !b.Valid() {
		m.logger.Warn("min size exceeds max size", "min", b.Min, "max", b.Max)
	}
	return m
}

// Position returns the top-left corner.
func (m *Manager) Position() Point { return m.rect.Point }

// Size returns the current extent.
func (m *Manager) Size() Size { return m.rect.Size }

// Rect returns position and size together.
func (m *Manager) Rect() Rect { return m.rect }

// Target returns the global scope gestures listen on.
func (m *Manager) Target() EventTarget { return m.target }

// Mode returns the current interaction mode.
func (m *Manager) Mode() Mode {
	if m.active == nil {
		return Idle
	}
	return m.active.mode
}

// IsDragging reports whether a drag is in progress.
func (m *Manager) IsDragging() bool {
	return m.Mode() == Dragging
}

// ActiveResizeDirection returns the handle being dragged, or DirNone.
func (m *Manager) ActiveResizeDirection() Direction {
	if m.active == nil {
		return DirNone
	}
	return m.active.dir
}

// Bounds resolves the size constraints against the current viewport.
func (m *Manager) Bounds() Bounds {
	b := Bounds{Min: m.opts.MinSize, Max: m.opts.MaxSize}
	var viewport Size
	if m.opts.Viewport != nil {
		viewport = m.opts.Viewport()
	}
	b.Max.Width = fallback(b.Max.Width, viewport.Width)
	b.Max.Height = fallback(b.Max.Height, viewport.Height)
	return b
}

func fallback(limit, viewport int) int {
	switch {
	case limit > 0:
		return limit
	case viewport > 0:
		return viewport
	}
	return Unbounded
}

// SetPosition overwrites the position without clamping. A running gesture
// will replace it on its next move.
func (m *Manager) SetPosition(p Point) {
	m.commitPosition(p)
}

// SetSize overwrites the size without clamping. Callers that want the
// configured bounds applied should pass the result of ClampSize.
func (m *Manager) SetSize(s Size) {
	m.commitSize(s)
}

// Limits returns the configured size constraints before viewport fallback.
func (m *Manager) Limits() (minSize, maxSize Size) {
	return m.opts.MinSize, m.opts.MaxSize
}

// SetLimits replaces the size constraints. A resize already in progress keeps
// the bounds it started with.
func (m *Manager) SetLimits(minSize, maxSize Size) {
	if minSize.IsZero() {
		minSize = DefaultMinSize
	}
	m.opts.MinSize = minSize
	m.opts.MaxSize = maxSize
	if b := m.Bounds(); !b.Valid() {
		m.logger.Warn("min size exceeds max size", "min", b.Min, "max", b.Max)
	}
}

// BeginDrag starts moving the window with the pointer in ev. It returns false
// and changes nothing when another gesture is active.
func (m *Manager) BeginDrag(ev PointerEvent) bool {
	return m.begin(ev, Dragging, DirNone)
}

// BeginResize starts resizing from the dir handle. It returns false and
// changes nothing when another gesture is active or dir is DirNone.
func (m *Manager) BeginResize(ev PointerEvent, dir Direction) bool {
	if dir == DirNone {
		return false
	}
	return m.begin(ev, Resizing, dir)
}

// Close ends any gesture in flight and releases its listeners. The owner
// calls it when the window goes away.
func (m *Manager) Close() {
	m.end()
}

func (m *Manager) begin(ev PointerEvent, mode Mode, dir Direction) bool {
	if m.active != nil {
		m.logger.Debug("ignoring competing gesture", "active", m.active.mode, "requested", mode)
		return false
	}
	start, tr, ok := startPointer(ev)
	if !ok {
		return false
	}

	g := &gesture{
		mode:    mode,
		dir:     dir,
		start:   start,
		origin:  m.rect,
		tracker: tr,
	}
	if mode == Resizing {
		g.bounds = m.Bounds()
		if !g.bounds.Valid() {
			m.logger.Warn("resizing with inverted bounds", "min", g.bounds.Min, "max", g.bounds.Max)
		}
	}

	m.active = g
	g.release = m.listen(g)
	m.logger.Debug("gesture started", "mode", mode, "dir", dir, "pointer", start, "origin", g.origin)
	return true
}

// listen is the only place global listeners are attached; end is the only
// place the returned release runs.
func (m *Manager) listen(g *gesture) func() {
	move := func(ev PointerEvent) { m.move(g, ev) }
	stop := func(ev PointerEvent) {
		if g.tracker.lifted(ev) {
			m.finish(g)
		}
	}

	removers := []func(){
		m.target.AddEventListener(EventMouseMove, move),
		m.target.AddEventListener(EventMouseUp, stop),
		m.target.AddEventListener(EventTouchMove, move),
		m.target.AddEventListener(EventTouchEnd, stop),
		m.target.AddEventListener(EventTouchCancel, func(ev PointerEvent) {
			if g.tracker.cancelled(ev) {
				m.finish(g)
			}
		}),
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		for _, remove := range removers {
			remove()
		}
	}
}

func (m *Manager) move(g *gesture, ev PointerEvent) {
	if m.active != g {
		return
	}
	p, ok := g.tracker.locate(ev)
	if !ok {
		return
	}
	delta := p.Sub(g.start)

	switch g.mode {
	case Dragging:
		m.commitPosition(ClampPosition(g.origin.Point.Add(delta), Point{}))
	case Resizing:
		r := Resize(g.origin, g.dir, delta, g.bounds)
		m.commitSize(r.Size)
		m.commitPosition(r.Point)
	}
}

func (m *Manager) finish(g *gesture) {
	if m.active == g {
		m.end()
	}
}

func (m *Manager) end() {
	g := m.active
	if g == nil {
		return
	}
	m.active = nil
	g.release()
	m.logger.Debug("gesture ended", "mode", g.mode, "rect", m.rect)
}

func (m *Manager) commitPosition(p Point) {
	m.rect.Point = p
	if m.opts.OnPositionChange != nil {
		m.opts.OnPositionChange(p)
	}
}

func (m *Manager) commitSize(s Size) {
	m.rect.Size = s
	if m.opts.OnSizeChange != nil {
		m.opts.OnSizeChange(s)
	}
}
