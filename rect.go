package blitrepro

import (
	"fmt"
	"image"
	"math"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// A rectangle with non-positive width or height is empty.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromImage returns the rectangle covering an image of the given bounds.
func RectFromImage(width, height int) Rect {
	return Rect{W: float64(width), H: float64(height)}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the largest rectangle contained by both r and s.
// The result is the zero Rect if they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	x0 := math.Max(r.X, s.X)
	y0 := math.Max(r.Y, s.Y)
	x1 := math.Min(r.MaxX(), s.MaxX())
	y1 := math.Min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether s lies entirely inside r.
func (r Rect) Contains(s Rect) bool {
	return s.X >= r.X && s.Y >= r.Y && s.MaxX() <= r.MaxX() && s.MaxY() <= r.MaxY()
}

// Pixels returns the smallest integer rectangle covering r.
func (r Rect) Pixels() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.MaxX())),
		int(math.Ceil(r.MaxY())),
	)
}

// Scale returns the horizontal and vertical factors that map r onto dst.
// Zero is returned for an axis where r has no extent.
func (r Rect) Scale(dst Rect) (sx, sy float64) {
	if r.W > 0 {
		sx = dst.W / r.W
	}
	if r.H > 0 {
		sy = dst.H / r.H
	}
	return sx, sy
}

// String formats the rectangle as "(x,y)+(w×h)".
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)+(%g×%g)", r.X, r.Y, r.W, r.H)
}
