package nms

import (
	"github.com/chewxy/math32"
)

// Box is an axis aligned bounding box defined by its top left (X1, Y1) and
// bottom right (X2, Y2) corners
type Box struct {
	X1 float32
	Y1 float32
	X2 float32
	Y2 float32
}

// Width returns the box width.  Degenerate boxes where X2 <= X1 have a
// width of 0, never negative.
func (b Box) Width() float32 {
	return math32.Max(0, b.X2-b.X1)
}

// Height returns the box height.  Degenerate boxes where Y2 <= Y1 have a
// height of 0, never negative.
func (b Box) Height() float32 {
	return math32.Max(0, b.Y2-b.Y1)
}

// Area returns the box area, degenerate boxes have an area of 0
func (b Box) Area() float32 {
	return b.Width() * b.Height()
}

// Union returns the smallest box covering both b and o
func (b Box) Union(o Box) Box {
	return Box{
		X1: math32.Min(b.X1, o.X1),
		Y1: math32.Min(b.Y1, o.Y1),
		X2: math32.Max(b.X2, o.X2),
		Y2: math32.Max(b.Y2, o.Y2),
	}
}

// Intersection works out the overlapping area of two boxes.  Boxes that
// only touch at an edge or corner have an intersection of 0.
func Intersection(a, b Box) float32 {

	w := math32.Max(0, math32.Min(a.X2, b.X2)-math32.Max(a.X1, b.X1))
	h := math32.Max(0, math32.Min(a.Y2, b.Y2)-math32.Max(a.Y1, b.Y1))

	return w * h
}

// IoU works out the Intersection over Union value of two boxes.  A pair of
// boxes whose combined area is 0 returns 0 so degenerate boxes never
// suppress each other.
func IoU(a, b Box) float32 {

	inter := Intersection(a, b)
	union := a.Area() + b.Area() - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}
