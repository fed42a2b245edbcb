package mcp

import "github.com/Gaurav-Gosain/tuiwin/internal/tape"

// ReplayInput is the input for the replay_gestures tool.
type ReplayInput struct {
	Script         string `json:"script" jsonschema:"required,Gesture script, one command per line (Drag X Y, Resize DIR X Y, Move X Y, Release, Touch X Y, Expect Size W H, ...)"`
	ViewportWidth  int    `json:"viewport_width,omitempty" jsonschema:"Viewport width (default: 1920)"`
	ViewportHeight int    `json:"viewport_height,omitempty" jsonschema:"Viewport height (default: 1080)"`
}

// ReplayOutput is the output for the replay_gestures tool.
type ReplayOutput struct {
	Steps []tape.Step `json:"steps"`
	// Failure is set when an Expect command did not hold. Steps up to the
	// failing line are still returned.
	Failure string `json:"failure,omitempty"`
}

// ResizeInput is the input for the compute_resize tool.
type ResizeInput struct {
	X         int    `json:"x" jsonschema:"required,Window left edge before the resize"`
	Y         int    `json:"y" jsonschema:"required,Window top edge before the resize"`
	Width     int    `json:"width" jsonschema:"required,Window width before the resize"`
	Height    int    `json:"height" jsonschema:"required,Window height before the resize"`
	Direction string `json:"direction" jsonschema:"required,Handle being dragged: n, s, e, w, ne, nw, se or sw"`
	DeltaX    int    `json:"delta_x" jsonschema:"Horizontal pointer movement since the press"`
	DeltaY    int    `json:"delta_y" jsonschema:"Vertical pointer movement since the press"`
	MinWidth  int    `json:"min_width,omitempty" jsonschema:"Minimum width (default: 300)"`
	MinHeight int    `json:"min_height,omitempty" jsonschema:"Minimum height (default: 200)"`
	MaxWidth  int    `json:"max_width,omitempty" jsonschema:"Maximum width (default: unbounded)"`
	MaxHeight int    `json:"max_height,omitempty" jsonschema:"Maximum height (default: unbounded)"`
}

// ResizeOutput is the output for the compute_resize tool.
type ResizeOutput struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
