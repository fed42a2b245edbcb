// Package window implements the chrome around a floating window: title bar,
// traffic-light buttons, resize handles and maximize/restore.
package window

import (
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/google/uuid"
)

// Chrome layout, in cells relative to the window's top-left corner.
const (
	TitleRow    = 1
	CloseCol    = 2
	MinimizeCol = 4
	MaximizeCol = 6

	// DoubleClickInterval is the longest gap between two title bar presses
	// that still toggles maximize.
	DoubleClickInterval = 400 * time.Millisecond
)

// Region is the part of the chrome under a point.
type Region int

const (
	RegionNone Region = iota
	RegionContent
	RegionTitleBar
	RegionClose
	RegionMinimize
	RegionMaximize
	RegionHandle
)

func (r Region) String() string {
	switch r {
	case RegionContent:
		return "content"
	case RegionTitleBar:
		return "titlebar"
	case RegionClose:
		return "close"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionHandle:
		return "handle"
	}
	return "none"
}

// Hit is the result of hit testing. Dir is set for RegionHandle.
type Hit struct {
	Region Region
	Dir    geometry.Direction
}

// Options configures a Frame.
type Options struct {
	Title    string
	Geometry geometry.Options
	// Clock defaults to time.Now; tests replace it to control double presses.
	Clock func() time.Time

	OnClose    func()
	OnMinimize func()
	OnMaximize func(maximized bool)
}

// Frame is one window: its geometry plus the chrome state around it.
type Frame struct {
	ID    string
	Title string
	Body  []string

	geo   *geometry.Manager
	clock func() time.Time
	opts  Options

	maximized   bool
	minimized   bool
	closed      bool
	restoreRect geometry.Rect
	lastTitle   time.Time
}

// New creates a frame and its geometry manager.
func New(opts Options) *Frame {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Frame{
		ID:    uuid.New().String(),
		Title: opts.Title,
		geo:   geometry.NewManager(opts.Geometry),
		clock: opts.Clock,
		opts:  opts,
	}
}

// Geometry returns the frame's geometry manager.
func (f *Frame) Geometry() *geometry.Manager { return f.geo }

// Maximized reports whether the frame fills its maximum bounds.
func (f *Frame) Maximized() bool { return f.maximized }

// Minimized reports whether the frame is hidden in the dock.
func (f *Frame) Minimized() bool { return f.minimized }

// Closed reports whether the frame has been closed.
func (f *Frame) Closed() bool { return f.closed }

// Visible reports whether the frame should be drawn and hit tested.
func (f *Frame) Visible() bool { return !f.closed && !f.minimized }

// HitTest returns the chrome region at p.
func (f *Frame) HitTest(p geometry.Point) Hit {
	r := f.geo.Rect()
	if !f.Visible() || !r.Contains(p) {
		return Hit{}
	}

	lx, ly := p.X-r.X, p.Y-r.Y
	last, bottom := r.Width-1, r.Height-1

	switch {
	case ly == 0:
		return Hit{Region: RegionHandle, Dir: pick(lx, last, geometry.DirNW, geometry.DirN, geometry.DirNE)}
	case ly == bottom:
		return Hit{Region: RegionHandle, Dir: pick(lx, last, geometry.DirSW, geometry.DirS, geometry.DirSE)}
	case lx == 0:
		return Hit{Region: RegionHandle, Dir: geometry.DirW}
	case lx == last:
		return Hit{Region: RegionHandle, Dir: geometry.DirE}
	case ly == TitleRow:
		switch lx {
		case CloseCol:
			return Hit{Region: RegionClose}
		case MinimizeCol:
			return Hit{Region: RegionMinimize}
		case MaximizeCol:
			return Hit{Region: RegionMaximize}
		}
		return Hit{Region: RegionTitleBar}
	}
	return Hit{Region: RegionContent}
}

func pick(lx, last int, first, middle, end geometry.Direction) geometry.Direction {
	switch lx {
	case 0:
		return first
	case last:
		return end
	}
	return middle
}

// Press routes a pointer-down to exactly one chrome action: a button, a
// drag, or a resize. Presses are ignored while a gesture is active.
func (f *Frame) Press(ev geometry.PointerEvent) Hit {
	p, ok := geometry.PointerPosition(ev)
	if !ok {
		return Hit{}
	}
	hit := f.HitTest(p)
	if hit.Region == RegionNone || f.geo.Mode() != geometry.Idle {
		return hit
	}

	switch hit.Region {
	case RegionClose:
		f.Close()
	case RegionMinimize:
		f.Minimize()
	case RegionMaximize:
		f.ToggleMaximize()
	case RegionTitleBar:
		now := f.clock()
		if !f.lastTitle.IsZero() && now.Sub(f.lastTitle) <= DoubleClickInterval {
			f.lastTitle = time.Time{}
			f.ToggleMaximize()
			return hit
		}
		f.lastTitle = now
		f.geo.BeginDrag(ev)
	case RegionHandle:
		f.geo.BeginResize(ev, hit.Dir)
	}
	return hit
}

// ToggleMaximize fills the maximum bounds from the origin, or restores the
// geometry saved when the frame was maximized. It does nothing while a
// gesture is active, since the next move would overwrite the geometry.
func (f *Frame) ToggleMaximize() {
	if f.geo.Mode() != geometry.Idle {
		return
	}
	if f.maximized {
		f.maximized = false
		f.geo.SetSize(f.restoreRect.Size)
		f.geo.SetPosition(f.restoreRect.Point)
	} else {
		f.restoreRect = f.geo.Rect()
		size := f.geo.Bounds().Max
		if size.Width >= geometry.Unbounded {
			size.Width = f.restoreRect.Width
		}
		if size.Height >= geometry.Unbounded {
			size.Height = f.restoreRect.Height
		}
		f.maximized = true
		f.geo.SetSize(size)
		f.geo.SetPosition(geometry.Point{})
	}
	if f.opts.OnMaximize != nil {
		f.opts.OnMaximize(f.maximized)
	}
}

// Minimize hides the frame and cancels any gesture.
func (f *Frame) Minimize() {
	if f.minimized || f.closed {
		return
	}
	f.geo.Close()
	f.minimized = true
	if f.opts.OnMinimize != nil {
		f.opts.OnMinimize()
	}
}

// Restore shows a minimized frame again.
func (f *Frame) Restore() {
	f.minimized = false
}

// Close tears the frame down. Any gesture in flight is ended and its
// listeners removed.
func (f *Frame) Close() {
	if f.closed {
		return
	}
	f.geo.Close()
	f.closed = true
	if f.opts.OnClose != nil {
		f.opts.OnClose()
	}
}
