package engine

import "fmt"

// RectSize is a rectangle waiting to be placed. ID is an opaque reference to
// the payload the rectangle stands for; the packer never interprets it.
type RectSize struct {
	Width  int
	Height int
	ID     int
}

// Rect is an axis-aligned rectangle inside a bin. It is used both for placed
// rectangles (Flipped and ID meaningful) and for free space.
type Rect struct {
	X       int
	Y       int
	Width   int
	Height  int
	Flipped bool
	ID      int
}

// Area returns Width * Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainedIn returns true if r lies entirely inside b.
func (r Rect) ContainedIn(b Rect) bool {
	return r.X >= b.X && r.Y >= b.Y &&
		r.Right() <= b.Right() &&
		r.Bottom() <= b.Bottom()
}

// Intersects returns true if r and o share a positive area. Touching edges
// do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// String formats r as "x,y wxh".
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}
