package geometry

import "sync"

// EventType names a global pointer event.
type EventType string

// Global pointer events a gesture listens to.
const (
	EventMouseMove   EventType = "mousemove"
	EventMouseUp     EventType = "mouseup"
	EventTouchMove   EventType = "touchmove"
	EventTouchEnd    EventType = "touchend"
	EventTouchCancel EventType = "touchcancel"
)

// Handler receives a dispatched pointer event.
type Handler func(PointerEvent)

// EventTarget is a global event scope that outlives any single window, the
// equivalent of a browser document.
type EventTarget interface {
	// AddEventListener registers h for typ and returns a function that
	// removes it. The returned function is safe to call more than once.
	AddEventListener(typ EventType, h Handler) (remove func())
}

type registration struct {
	handler Handler
	removed bool
}

// Document is the default EventTarget. Front ends feed it raw input with
// Dispatch; gestures subscribe to it while they are active.
type Document struct {
	mu        sync.Mutex
	listeners map[EventType][]*registration
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{listeners: make(map[EventType][]*registration)}
}

// AddEventListener implements EventTarget.
func (d *Document) AddEventListener(typ EventType, h Handler) func() {
	reg := &registration{handler: h}

	d.mu.Lock()
	d.listeners[typ] = append(d.listeners[typ], reg)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if reg.removed {
			return
		}
		reg.removed = true
		regs := d.listeners[typ]
		for i, r := range regs {
			if r == reg {
				d.listeners[typ] = append(regs[:i:i], regs[i+1:]...)
				break
			}
		}
		if len(d.listeners[typ]) == 0 {
			delete(d.listeners, typ)
		}
	}
}

// Dispatch delivers ev to every listener of typ and returns how many were
// invoked. Handlers run without the lock held, so they may add or remove
// listeners; a listener removed during dispatch is skipped.
func (d *Document) Dispatch(typ EventType, ev PointerEvent) int {
	d.mu.Lock()
	regs := append([]*registration(nil), d.listeners[typ]...)
	d.mu.Unlock()

	called := 0
	for _, reg := range regs {
		d.mu.Lock()
		removed := reg.removed
		d.mu.Unlock()
		if removed {
			continue
		}
		reg.handler(ev)
		called++
	}
	return called
}

// ListenerCount returns the number of listeners registered for typ.
func (d *Document) ListenerCount(typ EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[typ])
}

// Len returns the number of listeners across all event types.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, regs := range d.listeners {
		n += len(regs)
	}
	return n
}
