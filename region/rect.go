package region

import "fmt"

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Rect is an inclusive pixel rectangle: (X1, Y1) is the top-left pixel and
// (X2, Y2) the bottom-right pixel.
type Rect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// PointRect returns the single-pixel rectangle at p.
func PointRect(p Point) Rect {
	return Rect{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
}

// Width returns the horizontal span X2-X1.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical span Y2-Y1.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Center returns the midpoint of the rectangle, rounded toward zero.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Within reports whether r lies inside other grown by slack on every side.
func (r Rect) Within(other Rect, slack int) bool {
	return r.X1 >= other.X1-slack &&
		r.Y1 >= other.Y1-slack &&
		r.X2 <= other.X2+slack &&
		r.Y2 <= other.Y2+slack
}

// Canon returns the rectangle with its corners ordered so that X1<=X2 and
// Y1<=Y2.
func (r Rect) Canon() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
