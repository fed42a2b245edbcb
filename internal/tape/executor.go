package tape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/window"
	"github.com/charmbracelet/log"
)

// ErrExpectation is wrapped by the error returned for a failed Expect.
var ErrExpectation = errors.New("expectation failed")

// scriptEpoch is the start of script time.
var scriptEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// Geometry seeds the window. Target and Viewport are owned by the
	// executor.
	Geometry geometry.Options
	// Viewport is the initial viewport; Viewport commands replace it.
	Viewport geometry.Size
	// Realtime makes Sleep commands actually wait.
	Realtime bool
	Logger   *log.Logger
}

// Step is the window state after one command.
type Step struct {
	Line      int            `json:"line" yaml:"line"`
	Command   string         `json:"command" yaml:"command"`
	Position  geometry.Point `json:"position" yaml:"position"`
	Size      geometry.Size  `json:"size" yaml:"size"`
	Mode      string         `json:"mode" yaml:"mode"`
	Direction string         `json:"direction,omitempty" yaml:"direction,omitempty"`
	Listeners int            `json:"listeners" yaml:"listeners"`
}

// Executor replays commands against a headless window.
type Executor struct {
	doc      *geometry.Document
	frame    *window.Frame
	viewport geometry.Size
	pointer  geometry.Point
	touches  []geometry.Touch
	// clock is the script's own time. Sleep advances it, so double presses
	// replay the same way with or without realtime.
	clock    time.Time
	realtime bool
	logger   *log.Logger
}

// NewExecutor creates an executor with a fresh window.
func NewExecutor(opts ExecutorOptions) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = log.WithPrefix("tape")
	}
	e := &Executor{
		doc:      geometry.NewDocument(),
		viewport: opts.Viewport,
		clock:    scriptEpoch,
		realtime: opts.Realtime,
		logger:   logger,
	}

	geo := opts.Geometry
	geo.Target = e.doc
	geo.Viewport = func() geometry.Size { return e.viewport }
	if geo.Logger == nil {
		geo.Logger = logger
	}
	e.frame = window.New(window.Options{
		Title:    "replay",
		Geometry: geo,
		Clock:    func() time.Time { return e.clock },
	})
	return e
}

// Frame returns the window being driven.
func (e *Executor) Frame() *window.Frame { return e.frame }

// Document returns the event scope gestures listen on.
func (e *Executor) Document() *geometry.Document { return e.doc }

// Run executes commands in order and returns the state after each one. It
// stops at the first failed expectation or when ctx is done. The window is
// closed when Run returns.
func (e *Executor) Run(ctx context.Context, commands []Command) ([]Step, error) {
	defer e.frame.Close()

	steps := make([]Step, 0, len(commands))
	player := NewPlayer(commands)
	for cmd := player.NextCommand(); cmd != nil; cmd = player.NextCommand() {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		if err := e.execute(ctx, cmd); err != nil {
			return steps, err
		}
		steps = append(steps, e.snapshot(cmd))
		e.logger.Debug("step", "line", cmd.Line, "command", cmd.String(), "progress", player.Progress())
		player.Advance()
	}
	return steps, nil
}

func (e *Executor) snapshot(cmd *Command) Step {
	geo := e.frame.Geometry()
	step := Step{
		Line:      cmd.Line,
		Command:   cmd.String(),
		Position:  geo.Position(),
		Size:      geo.Size(),
		Mode:      geo.Mode().String(),
		Listeners: e.doc.Len(),
	}
	if dir := geo.ActiveResizeDirection(); dir != geometry.DirNone {
		step.Direction = dir.String()
	}
	return step
}

func (e *Executor) execute(ctx context.Context, cmd *Command) error {
	geo := e.frame.Geometry()

	switch cmd.Type {
	case CommandType_Sleep:
		e.clock = e.clock.Add(cmd.Delay)
		if !e.realtime {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cmd.Delay):
		}
		return nil
	case CommandType_Maximize:
		e.frame.ToggleMaximize()
		return nil
	case CommandType_Minimize:
		e.frame.Minimize()
		return nil
	case CommandType_Restore:
		e.frame.Restore()
		return nil
	case CommandType_Close:
		e.frame.Close()
		return nil
	case CommandType_TouchCancel:
		e.doc.Dispatch(geometry.EventTouchCancel, geometry.TouchEvent{Touches: e.touches})
		e.touches = nil
		return nil
	case CommandType_Expect:
		return e.expect(cmd)
	}

	from := 0
	if cmd.Type == CommandType_Resize {
		from = 1
	}
	n, err := cmd.Ints(from)
	if err != nil {
		return err
	}

	switch cmd.Type {
	case CommandType_Viewport:
		e.viewport = geometry.Size{Width: n[0], Height: n[1]}
	case CommandType_MinSize:
		_, maxSize := geo.Limits()
		geo.SetLimits(geometry.Size{Width: n[0], Height: n[1]}, maxSize)
	case CommandType_MaxSize:
		minSize, _ := geo.Limits()
		geo.SetLimits(minSize, geometry.Size{Width: n[0], Height: n[1]})
	case CommandType_SetPosition:
		geo.SetPosition(geometry.Point{X: n[0], Y: n[1]})
	case CommandType_SetSize:
		geo.SetSize(geometry.Size{Width: n[0], Height: n[1]})
	case CommandType_Press:
		e.pointer = geometry.Point{X: n[0], Y: n[1]}
		e.frame.Press(e.mouse())
	case CommandType_Drag:
		e.pointer = geometry.Point{X: n[0], Y: n[1]}
		geo.BeginDrag(e.mouse())
	case CommandType_Resize:
		dir, err := geometry.ParseDirection(cmd.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", cmd.Line, err)
		}
		e.pointer = geometry.Point{X: n[0], Y: n[1]}
		geo.BeginResize(e.mouse(), dir)
	case CommandType_Move:
		e.pointer = geometry.Point{X: n[0], Y: n[1]}
		e.doc.Dispatch(geometry.EventMouseMove, e.mouse())
	case CommandType_Release:
		if len(n) == 2 {
			e.pointer = geometry.Point{X: n[0], Y: n[1]}
		}
		e.doc.Dispatch(geometry.EventMouseUp, e.mouse())
	case CommandType_Touch:
		e.touches = touchList(n)
		e.frame.Press(geometry.TouchEvent{Touches: e.touches})
	case CommandType_TouchMove:
		e.touches = touchList(n)
		e.doc.Dispatch(geometry.EventTouchMove, geometry.TouchEvent{Touches: e.touches})
	case CommandType_TouchEnd:
		e.touches = touchList(n)
		e.doc.Dispatch(geometry.EventTouchEnd, geometry.TouchEvent{Touches: e.touches})
	default:
		return fmt.Errorf("line %d: unsupported command %s", cmd.Line, cmd.Type)
	}
	return nil
}

func (e *Executor) mouse() geometry.MouseEvent {
	return geometry.MouseEvent{X: e.pointer.X, Y: e.pointer.Y}
}

// touchList numbers X Y pairs as touches 0, 1, ... in script order.
func touchList(n []int) []geometry.Touch {
	touches := make([]geometry.Touch, 0, len(n)/2)
	for i := 0; i+1 < len(n); i += 2 {
		touches = append(touches, geometry.Touch{ID: i / 2, X: n[i], Y: n[i+1]})
	}
	return touches
}

func (e *Executor) expect(cmd *Command) error {
	geo := e.frame.Geometry()
	fail := func(format string, args ...any) error {
		return fmt.Errorf("line %d: %w: %s", cmd.Line, ErrExpectation, fmt.Sprintf(format, args...))
	}

	switch cmd.Args[0] {
	case ExpectPosition:
		n, err := cmd.Ints(1)
		if err != nil {
			return err
		}
		want := geometry.Point{X: n[0], Y: n[1]}
		if got := geo.Position(); got != want {
			return fail("position is %v, want %v", got, want)
		}
	case ExpectSize:
		n, err := cmd.Ints(1)
		if err != nil {
			return err
		}
		want := geometry.Size{Width: n[0], Height: n[1]}
		if got := geo.Size(); got != want {
			return fail("size is %v, want %v", got, want)
		}
	case ExpectListeners:
		n, err := cmd.Ints(1)
		if err != nil {
			return err
		}
		if got := e.doc.Len(); got != n[0] {
			return fail("%d listeners attached, want %d", got, n[0])
		}
	case ExpectMode:
		if got := geo.Mode().String(); got != cmd.Args[1] {
			return fail("mode is %s, want %s", got, cmd.Args[1])
		}
		if len(cmd.Args) > 2 {
			if got := geo.ActiveResizeDirection().String(); got != cmd.Args[2] {
				return fail("resizing %s, want %s", got, cmd.Args[2])
			}
		}
	default:
		return fmt.Errorf("line %d: unknown Expect subject %q", cmd.Line, cmd.Args[0])
	}
	return nil
}

// Replay parses and runs a script in one call.
func Replay(ctx context.Context, script string, opts ExecutorOptions) ([]Step, error) {
	commands, errs := ParseFile(script)
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse script: %s", strings.Join(errs, "; "))
	}
	return NewExecutor(opts).Run(ctx, commands)
}
