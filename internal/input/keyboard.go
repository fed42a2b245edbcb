package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/window"
)

// HandleKey runs the action bound to msg against frame and returns the
// action name, or "" for unbound keys. The caller quits on config.ActionQuit.
func HandleKey(msg tea.KeyPressMsg, registry *config.KeybindRegistry, frame *window.Frame) string {
	action := registry.GetAction(msg.String())
	if action == "" || frame == nil {
		return action
	}

	switch action {
	case config.ActionToggleMaximize:
		if frame.Visible() && frame.Geometry().Mode() == geometry.Idle {
			frame.ToggleMaximize()
		}
	case config.ActionMinimize:
		if frame.Minimized() {
			frame.Restore()
		} else {
			frame.Minimize()
		}
	case config.ActionRestore:
		frame.Restore()
	case config.ActionCloseWindow:
		frame.Close()
	}
	return action
}
