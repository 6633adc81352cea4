/*
Package crop implements the aspect-locked crop rectangle that is dragged and
resized over a rotated, scaled-to-fit source image, along with the mapping
between canvas coordinates and source image pixels.

The crop rectangle always has a width to height ratio of Aspect, is never
smaller than MinSize in either dimension and never leaves the displayed image.
Every function in this package is pure; gesture functions take a State and
return the updated State.
*/
package crop

const (
	// Aspect is the fixed width to height ratio of the crop rectangle
	Aspect = 3.0 / 4.0

	// MinSize is the smallest width or height, in canvas units, the crop
	// rectangle can be resized to
	MinSize = 80

	// HandleSize is the half-width of the square hit zone around each
	// corner of the crop rectangle
	HandleSize = 12
)

// Point is a position in canvas or source space.
type Point struct {
	X, Y float64
}

// Size is the width and height of an image or canvas.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Display is the canvas rectangle occupied by the rotated source image after
// it has been scaled to fit. Scale converts source pixel distances into
// canvas distances.
type Display struct {
	X, Y, W, H float64
	Scale      float64
}

// Rect returns the display area without the scale.
func (d Display) Rect() Rect {
	return Rect{d.X, d.Y, d.W, d.H}
}

// Rotation is a clockwise rotation of the source image in degrees.
type Rotation int

// Supported rotations
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Next returns the rotation a further 90 degrees clockwise.
func (r Rotation) Next() Rotation {
	return (r + 90) % 360
}

// Valid reports whether r is one of the four supported rotations.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Swapped reports whether the rotation exchanges width and height.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// Rotated returns the size of s after applying r.
func (r Rotation) Rotated(s Size) Size {
	if r.Swapped() {
		return Size{s.H, s.W}
	}
	return s
}
