package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandType represents the type of a gesture script command
type CommandType string

const (
	// Setup
	CommandType_Viewport CommandType = "Viewport"
	CommandType_MinSize  CommandType = "MinSize"
	CommandType_MaxSize  CommandType = "MaxSize"

	// Mouse
	CommandType_Press   CommandType = "Press"
	CommandType_Drag    CommandType = "Drag"
	CommandType_Resize  CommandType = "Resize"
	CommandType_Move    CommandType = "Move"
	CommandType_Release CommandType = "Release"

	// Touch
	CommandType_Touch       CommandType = "Touch"
	CommandType_TouchMove   CommandType = "TouchMove"
	CommandType_TouchEnd    CommandType = "TouchEnd"
	CommandType_TouchCancel CommandType = "TouchCancel"

	// Window
	CommandType_SetPosition CommandType = "SetPosition"
	CommandType_SetSize     CommandType = "SetSize"
	CommandType_Maximize    CommandType = "Maximize"
	CommandType_Minimize    CommandType = "Minimize"
	CommandType_Restore     CommandType = "Restore"
	CommandType_Close       CommandType = "Close"

	// Synchronization
	CommandType_Sleep  CommandType = "Sleep"
	CommandType_Expect CommandType = "Expect"
)

// Subjects of an Expect command
const (
	ExpectPosition  = "Position"
	ExpectSize      = "Size"
	ExpectMode      = "Mode"
	ExpectListeners = "Listeners"
)

// Command represents a parsed script command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Sleep duration
	Line   int           // Source line number
	Column int           // Source column number
}

// String returns the command as it would be written in a script
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}

// Ints converts the numeric arguments starting at index from.
func (c *Command) Ints(from int) ([]int, error) {
	if from > len(c.Args) {
		return nil, nil
	}
	out := make([]int, 0, len(c.Args)-from)
	for _, arg := range c.Args[from:] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", c.Line, c.Type, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
