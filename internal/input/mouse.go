// Package input translates Bubble Tea input messages into window actions.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/window"
)

// HandleMouse feeds a mouse message into the pointer model. Left presses go
// to the frame, which decides between buttons, drag and resize. Motion and
// releases are dispatched on doc, where an active gesture is listening. It
// reports whether the message was consumed.
func HandleMouse(msg tea.MouseMsg, doc *geometry.Document, frame *window.Frame) bool {
	mouse := msg.Mouse()
	ev := geometry.MouseEvent{X: mouse.X, Y: mouse.Y}

	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft || frame == nil {
			return false
		}
		return frame.Press(ev).Region != window.RegionNone
	case tea.MouseMotionMsg:
		return doc.Dispatch(geometry.EventMouseMove, ev) > 0
	case tea.MouseReleaseMsg:
		return doc.Dispatch(geometry.EventMouseUp, ev) > 0
	}
	return false
}

// MotionFilter returns a tea.WithFilter function that drops mouse motion
// unless a gesture is listening for it on doc.
func MotionFilter(doc *geometry.Document) func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.MouseMotionMsg); !ok {
			return msg
		}
		if doc.ListenerCount(geometry.EventMouseMove) > 0 {
			return msg
		}
		return nil
	}
}
