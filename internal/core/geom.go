// Package core provides fundamental types shared by games and the platform.
// It has no external dependencies (especially no Bubble Tea) so game logic
// stays pure and testable.
package core

// Rect represents an axis-aligned area on a screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Viewport returns the window of size w x h over a world of size
// worldW x worldH that keeps (focusX, focusY) as central as possible
// without scrolling past the world's edges.
func Viewport(focusX, focusY, w, h, worldW, worldH int) Rect {
	return Rect{
		X: scrollOffset(focusX, w, worldW),
		Y: scrollOffset(focusY, h, worldH),
		W: Min(w, worldW),
		H: Min(h, worldH),
	}
}

// scrollOffset returns the first visible index along one axis.
func scrollOffset(focus, view, total int) int {
	if view >= total {
		return 0
	}
	return Clamp(focus-view/2, 0, total-view)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// LargestOdd returns the largest odd number not above limit, or floor
// if that would be smaller.
func LargestOdd(limit, floor int) int {
	if limit%2 == 0 {
		limit--
	}
	return Max(limit, floor)
}
