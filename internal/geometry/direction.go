package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned when a direction code cannot be parsed.
var ErrUnknownDirection = errors.New("unknown resize direction")

// Direction identifies one of the eight resize handles.
type Direction uint8

const (
	// DirNone means no resize is in progress.
	DirNone Direction = iota
	// DirN is the top edge.
	DirN
	// DirS is the bottom edge.
	DirS
	// DirE is the right edge.
	DirE
	// DirW is the left edge.
	DirW
	// DirNE is the top-right corner.
	DirNE
	// DirNW is the top-left corner.
	DirNW
	// DirSE is the bottom-right corner.
	DirSE
	// DirSW is the bottom-left corner.
	DirSW
)

// Directions lists every resize handle in a stable order.
var Directions = []Direction{DirN, DirS, DirE, DirW, DirNE, DirNW, DirSE, DirSW}

var directionCodes = map[Direction]string{
	DirNone: "none",
	DirN:    "n",
	DirS:    "s",
	DirE:    "e",
	DirW:    "w",
	DirNE:   "ne",
	DirNW:   "nw",
	DirSE:   "se",
	DirSW:   "sw",
}

// String returns the lowercase compass code ("ne", "w", ...).
func (d Direction) String() string {
	if code, ok := directionCodes[d]; ok {
		return code
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// MarshalText encodes the direction as its compass code.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a compass code.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses a compass code, case-insensitively. The empty string
// and "none" map to DirNone.
func ParseDirection(s string) (Direction, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "" {
		return DirNone, nil
	}
	for d, c := range directionCodes {
		if c == code {
			return d, nil
		}
	}
	return DirNone, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Edge is the side of one axis that a resize moves.
type Edge int8

const (
	// EdgeNone leaves the axis untouched.
	EdgeNone Edge = 0
	// EdgeLeading is the top (N) or left (W) edge; moving it shifts position.
	EdgeLeading Edge = -1
	// EdgeTrailing is the bottom (S) or right (E) edge.
	EdgeTrailing Edge = 1
)

// Axes splits a direction into its horizontal and vertical edges.
func (d Direction) Axes() (horizontal, vertical Edge) {
	switch d {
	case DirN:
		return EdgeNone, EdgeLeading
	case DirS:
		return EdgeNone, EdgeTrailing
	case DirE:
		return EdgeTrailing, EdgeNone
	case DirW:
		return EdgeLeading, EdgeNone
	case DirNE:
		return EdgeTrailing, EdgeLeading
	case DirNW:
		return EdgeLeading, EdgeLeading
	case DirSE:
		return EdgeTrailing, EdgeTrailing
	case DirSW:
		return EdgeLeading, EdgeTrailing
	}
	return EdgeNone, EdgeNone
}
