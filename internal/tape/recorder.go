package tape

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
)

// Recorder records live pointer input as a gesture script that Replay can
// run against a fresh window.
type Recorder struct {
	commands  []Command
	startTime time.Time
	lastMark  time.Time // time already accounted for by Sleep commands
	enabled   bool
	minSleep  time.Duration // gaps shorter than this are folded into the next Sleep
	now       func() time.Time
}

// NewRecorder creates a stopped recorder. A nil clock means time.Now.
func NewRecorder(clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	return &Recorder{
		commands:  []Command{},
		startTime: now,
		lastMark:  now,
		minSleep:  50 * time.Millisecond,
		now:       clock,
	}
}

// Start begins recording, discarding anything recorded before.
func (r *Recorder) Start() {
	r.enabled = true
	r.startTime = r.now()
	r.lastMark = r.startTime
	r.commands = []Command{}
}

// Stop ends recording
func (r *Recorder) Stop() {
	r.enabled = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.enabled
}

// RecordViewport records the area the window may fill.
func (r *Recorder) RecordViewport(s geometry.Size) {
	r.record(false, CommandType_Viewport, s.Width, s.Height)
}

// RecordLimits records the configured size limits.
func (r *Recorder) RecordLimits(minSize, maxSize geometry.Size) {
	r.record(false, CommandType_MinSize, minSize.Width, minSize.Height)
	r.record(false, CommandType_MaxSize, maxSize.Width, maxSize.Height)
}

// RecordRect records the window geometry so a replay starts from it.
func (r *Recorder) RecordRect(rect geometry.Rect) {
	r.record(false, CommandType_SetPosition, rect.X, rect.Y)
	r.record(false, CommandType_SetSize, rect.Width, rect.Height)
}

// RecordPress records a pointer-down on the window chrome. The time since
// the previous command is always written out so double presses replay the
// same way.
func (r *Recorder) RecordPress(ev geometry.PointerEvent) {
	switch e := ev.(type) {
	case geometry.MouseEvent:
		r.record(true, CommandType_Press, e.X, e.Y)
	case geometry.TouchEvent:
		if len(e.Touches) > 0 {
			r.record(true, CommandType_Touch, touchArgs(e)...)
		}
	}
}

// RecordMove records pointer motion during a gesture.
func (r *Recorder) RecordMove(ev geometry.PointerEvent) {
	switch e := ev.(type) {
	case geometry.MouseEvent:
		r.record(false, CommandType_Move, e.X, e.Y)
	case geometry.TouchEvent:
		r.record(false, CommandType_TouchMove, touchArgs(e)...)
	}
}

// RecordRelease records a mouseup or touchend. A touchend lists the touches
// still down.
func (r *Recorder) RecordRelease(ev geometry.PointerEvent) {
	switch e := ev.(type) {
	case geometry.MouseEvent:
		r.record(false, CommandType_Release, e.X, e.Y)
	case geometry.TouchEvent:
		r.record(false, CommandType_TouchEnd, touchArgs(e)...)
	}
}

// RecordCancel records a touchcancel.
func (r *Recorder) RecordCancel() {
	r.record(false, CommandType_TouchCancel)
}

// RecordAction records a window action that did not come from a pointer:
// Maximize, Minimize, Restore or Close.
func (r *Recorder) RecordAction(action CommandType) error {
	switch action {
	case CommandType_Maximize, CommandType_Minimize, CommandType_Restore, CommandType_Close:
		r.record(true, action)
		return nil
	}
	return fmt.Errorf("%s is not a window action", action)
}

func (r *Recorder) record(flush bool, typ CommandType, args ...int) {
	if !r.enabled {
		return
	}

	gap := r.now().Sub(r.lastMark).Truncate(time.Millisecond)
	if gap >= r.minSleep || (flush && gap > 0) {
		literal := strconv.FormatInt(gap.Milliseconds(), 10) + "ms"
		r.append(Command{Type: CommandType_Sleep, Args: []string{literal}, Delay: gap})
		r.lastMark = r.lastMark.Add(gap)
	}

	cmd := Command{Type: typ, Args: make([]string, 0, len(args))}
	for _, n := range args {
		cmd.Args = append(cmd.Args, strconv.Itoa(n))
	}
	r.append(cmd)
}

func (r *Recorder) append(cmd Command) {
	cmd.Line = len(r.commands) + 1
	cmd.Column = 1
	r.commands = append(r.commands, cmd)
}

// touchArgs flattens touches to X Y pairs. Scripts number touches by
// position, so IDs are not kept.
func touchArgs(e geometry.TouchEvent) []int {
	args := make([]int, 0, 2*len(e.Touches))
	for _, t := range e.Touches {
		args = append(args, t.X, t.Y)
	}
	return args
}

// GetCommands returns all recorded commands
func (r *Recorder) GetCommands() []Command {
	return r.commands
}

// CommandCount returns the number of recorded commands
func (r *Recorder) CommandCount() int {
	return len(r.commands)
}

// String returns the script, preceded by a comment header when header is
// not empty.
func (r *Recorder) String(header string) string {
	var sb strings.Builder
	if header != "" {
		fmt.Fprintf(&sb, "# %s\n", header)
		fmt.Fprintf(&sb, "# Recorded: %s\n\n", r.startTime.Format(time.RFC3339))
	}
	for _, cmd := range r.commands {
		sb.WriteString(cmd.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteToFile saves the script to filename.
func (r *Recorder) WriteToFile(filename, header string) error {
	if err := os.WriteFile(filename, []byte(r.String(header)), 0o644); err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

// RecordingStats contains statistics about the recording
type RecordingStats struct {
	CommandCount int
	Duration     time.Duration
	IsRecording  bool
}

// GetStats returns recording statistics
func (r *Recorder) GetStats() RecordingStats {
	return RecordingStats{
		CommandCount: len(r.commands),
		Duration:     r.now().Sub(r.startTime),
		IsRecording:  r.enabled,
	}
}
