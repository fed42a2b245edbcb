package geometry

// PointerEvent is a mouse or touch event. The concrete types are MouseEvent
// and TouchEvent.
type PointerEvent interface {
	isPointerEvent()
}

// MouseEvent carries the pointer position of a mouse event.
type MouseEvent struct {
	X, Y int
}

func (MouseEvent) isPointerEvent() {}

// Touch is a single contact point.
type Touch struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Point returns the contact position.
func (t Touch) Point() Point { return Point{X: t.X, Y: t.Y} }

// TouchEvent lists the contact points still on the surface, first touch
// first. For an end event the lifted touches are no longer listed.
type TouchEvent struct {
	Touches []Touch
}

func (TouchEvent) isPointerEvent() {}

// tracker remembers which input source started a gesture so that later
// events are read from the same source.
type tracker struct {
	touch   bool
	touchID int
}

// startPointer extracts the gesture start point and the tracker to follow.
// Touch gestures follow the first touch for their whole lifetime.
func startPointer(ev PointerEvent) (Point, tracker, bool) {
	switch e := ev.(type) {
	case MouseEvent:
		return Point{X: e.X, Y: e.Y}, tracker{}, true
	case TouchEvent:
		if len(e.Touches) == 0 {
			return Point{}, tracker{}, false
		}
		first := e.Touches[0]
		return first.Point(), tracker{touch: true, touchID: first.ID}, true
	}
	return Point{}, tracker{}, false
}

// locate returns the position of the tracked pointer in ev. Events from the
// other input source are not part of the gesture.
func (t tracker) locate(ev PointerEvent) (Point, bool) {
	switch e := ev.(type) {
	case MouseEvent:
		if t.touch {
			return Point{}, false
		}
		return Point{X: e.X, Y: e.Y}, true
	case TouchEvent:
		if !t.touch {
			return Point{}, false
		}
		for _, touch := range e.Touches {
			if touch.ID == t.touchID {
				return touch.Point(), true
			}
		}
	}
	return Point{}, false
}

// lifted reports whether an end event finishes the gesture. A mouse gesture
// ends on mouseup only; a touch gesture ends when its own touch has left the
// surface.
func (t tracker) lifted(ev PointerEvent) bool {
	switch e := ev.(type) {
	case MouseEvent:
		return !t.touch
	case TouchEvent:
		if !t.touch {
			return false
		}
		_, still := t.locate(e)
		return !still
	}
	return false
}

// cancelled reports whether a touchcancel event aborts the gesture. Mouse
// gestures ignore it.
func (t tracker) cancelled(ev PointerEvent) bool {
	_, ok := ev.(TouchEvent)
	return ok && t.touch
}

// PointerPosition returns the primary pointer position of ev: the mouse
// position, or the first touch.
func PointerPosition(ev PointerEvent) (Point, bool) {
	p, _, ok := startPointer(ev)
	return p, ok
}
