package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/window"
)

func newFrame(doc *geometry.Document) *window.Frame {
	return window.New(window.Options{
		Title: "test",
		Geometry: geometry.Options{
			InitialPosition: geometry.Point{X: 5, Y: 5},
			InitialSize:     geometry.Size{Width: 20, Height: 8},
			MinSize:         geometry.Size{Width: 10, Height: 4},
			Viewport:        func() geometry.Size { return geometry.Size{Width: 80, Height: 24} },
			Target:          doc,
		},
	})
}

func TestHandleMouseDrag(t *testing.T) {
	doc := geometry.NewDocument()
	frame := newFrame(doc)

	if !HandleMouse(tea.MouseClickMsg{X: 12, Y: 6, Button: tea.MouseLeft}, doc, frame) {
		t.Fatal("title bar click was not consumed")
	}
	if !HandleMouse(tea.MouseMotionMsg{X: 15, Y: 9}, doc, frame) {
		t.Error("motion during drag was not consumed")
	}
	if got := frame.Geometry().Position(); got != (geometry.Point{X: 8, Y: 8}) {
		t.Errorf("Position = %v, want 8,8", got)
	}
	if !HandleMouse(tea.MouseReleaseMsg{X: 15, Y: 9}, doc, frame) {
		t.Error("release was not consumed")
	}
	if doc.Len() != 0 {
		t.Errorf("listeners after release = %d", doc.Len())
	}
	if HandleMouse(tea.MouseMotionMsg{X: 30, Y: 9}, doc, frame) {
		t.Error("idle motion was consumed")
	}
}

func TestHandleMouseIgnoresOtherButtons(t *testing.T) {
	doc := geometry.NewDocument()
	frame := newFrame(doc)

	tests := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{"right click", tea.MouseClickMsg{X: 12, Y: 6, Button: tea.MouseRight}},
		{"wheel", tea.MouseWheelMsg{X: 12, Y: 6, Button: tea.MouseWheelUp}},
		{"outside window", tea.MouseClickMsg{X: 60, Y: 20, Button: tea.MouseLeft}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if HandleMouse(tt.msg, doc, frame) {
				t.Error("message was consumed")
			}
			if frame.Geometry().Mode() != geometry.Idle {
				t.Errorf("mode = %v, want idle", frame.Geometry().Mode())
			}
		})
	}
}

func TestMotionFilter(t *testing.T) {
	doc := geometry.NewDocument()
	frame := newFrame(doc)
	filter := MotionFilter(doc)

	motion := tea.MouseMotionMsg{X: 1, Y: 1}
	if filter(nil, motion) != nil {
		t.Error("idle motion passed the filter")
	}
	key := tea.KeyPressMsg{Code: 'q', Text: "q"}
	if filter(nil, key) == nil {
		t.Error("non-motion message was dropped")
	}

	frame.Press(geometry.MouseEvent{X: 24, Y: 12})
	if filter(nil, motion) == nil {
		t.Error("motion during resize was dropped")
	}
}

func TestHandleKey(t *testing.T) {
	doc := geometry.NewDocument()
	frame := newFrame(doc)
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if got := HandleKey(tea.KeyPressMsg{Code: 'm', Text: "m"}, registry, frame); got != config.ActionToggleMaximize {
		t.Fatalf("action = %q", got)
	}
	if !frame.Maximized() {
		t.Error("m did not maximize")
	}

	HandleKey(tea.KeyPressMsg{Code: 'n', Text: "n"}, registry, frame)
	if !frame.Minimized() {
		t.Error("n did not minimize")
	}
	HandleKey(tea.KeyPressMsg{Code: 'n', Text: "n"}, registry, frame)
	if frame.Minimized() {
		t.Error("second n did not restore")
	}

	if got := HandleKey(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, registry, frame); got != config.ActionQuit {
		t.Errorf("ctrl+c action = %q, want quit", got)
	}
	if got := HandleKey(tea.KeyPressMsg{Code: 'z', Text: "z"}, registry, frame); got != "" {
		t.Errorf("unbound key action = %q", got)
	}
}
