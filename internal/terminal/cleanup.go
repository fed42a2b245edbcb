// Package terminal restores terminal state after the UI exits.
package terminal

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
)

// resetSequence undoes every mode the window UI turns on.
var resetSequence = []string{
	ansi.ResetInitialState,
	ansi.ResetModeMouseNormal,
	ansi.ResetModeMouseButtonEvent,
	ansi.ResetModeMouseAnyEvent,
	ansi.ResetModeMouseExtSgr,
	ansi.ResetModeFocusEvent,
	ansi.ShowCursor,
	ansi.ResetModeAltScreenSaveCursor,
	ansi.ResetStyle,
	"\r\n",
}

// Reset writes the reset sequence to w.
func Reset(w io.Writer) error {
	for _, seq := range resetSequence {
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	return nil
}

// ResetTerminal resets stdout. Call it when exiting, including after a
// crash, so mouse reporting does not leak into the shell.
func ResetTerminal() {
	_ = Reset(os.Stdout)
	_ = os.Stdout.Sync()
}
