// Package geometry owns the position and size of a floating window and turns
// pointer gestures (drag and 8-direction resize) into geometry updates.
package geometry

import (
	"fmt"
	"math"
)

// Unbounded is used as the max extent of an axis with no upper limit.
const Unbounded = math.MaxInt32

// Point is a position in viewport coordinates.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Size is a window extent.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsZero reports whether both axes are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is a positioned window.
type Rect struct {
	Point
	Size
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("%s@%s", r.Size, r.Point)
}

// Bounds constrains a window's size on both axes.
type Bounds struct {
	Min Size `json:"min" yaml:"min"`
	Max Size `json:"max" yaml:"max"`
}

// Valid reports whether Min does not exceed Max on either axis.
func (b Bounds) Valid() bool {
	return b.Min.Width <= b.Max.Width && b.Min.Height <= b.Max.Height
}
