package crop

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Mapper converts between canvas space and the pixel space of the unrotated
// source image.
type Mapper struct {
	Display  Display
	Rotation Rotation
	Source   Size
}

// ToSource maps a canvas point to a source pixel position.
func (m Mapper) ToSource(p Point) Point {
	u := (p.X - m.Display.X) / m.Display.Scale
	v := (p.Y - m.Display.Y) / m.Display.Scale

	switch m.Rotation {
	case Rotate90:
		return Point{v, m.Source.H - u}
	case Rotate180:
		return Point{m.Source.W - u, m.Source.H - v}
	case Rotate270:
		return Point{m.Source.W - v, u}
	default:
		return Point{u, v}
	}
}

// ToCanvas maps a source pixel position to a canvas point.
func (m Mapper) ToCanvas(p Point) Point {
	var u, v float64
	switch m.Rotation {
	case Rotate90:
		u, v = m.Source.H-p.Y, p.X
	case Rotate180:
		u, v = m.Source.W-p.X, m.Source.H-p.Y
	case Rotate270:
		u, v = p.Y, m.Source.W-p.X
	default:
		u, v = p.X, p.Y
	}
	return Point{m.Display.X + u*m.Display.Scale, m.Display.Y + v*m.Display.Scale}
}

func bounds(a, b Point) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// RectToSource maps a canvas rectangle to the source pixel rectangle it
// covers.
func (m Mapper) RectToSource(r Rect) Rect {
	return bounds(m.ToSource(r.Corner(TopLeft)), m.ToSource(r.Corner(BottomRight)))
}

// RectToCanvas maps a source pixel rectangle to the canvas rectangle it
// covers.
func (m Mapper) RectToCanvas(r Rect) Rect {
	return bounds(m.ToCanvas(r.Corner(TopLeft)), m.ToCanvas(r.Corner(BottomRight)))
}

// Matrix returns ToCanvas as an affine matrix in row-major order where
// x' = m[0]*x + m[1]*y + m[2] and y' = m[3]*x + m[4]*y + m[5].
func (m Mapper) Matrix() f64.Aff3 {
	s := m.Display.Scale
	dx, dy := m.Display.X, m.Display.Y
	w, h := m.Source.W, m.Source.H

	switch m.Rotation {
	case Rotate90:
		return f64.Aff3{
			0, -s, dx + s*h,
			s, 0, dy,
		}
	case Rotate180:
		return f64.Aff3{
			-s, 0, dx + s*w,
			0, -s, dy + s*h,
		}
	case Rotate270:
		return f64.Aff3{
			0, s, dx,
			-s, 0, dy + s*w,
		}
	default:
		return f64.Aff3{
			s, 0, dx,
			0, s, dy,
		}
	}
}

// CanvasToSource converts the canvas rectangle r into source image pixel
// coordinates.
func CanvasToSource(d Display, rot Rotation, source Size, r Rect) Rect {
	return Mapper{d, rot, source}.RectToSource(r)
}

// SourceToCanvas converts the source pixel rectangle r into canvas
// coordinates.
func SourceToCanvas(d Display, rot Rotation, source Size, r Rect) Rect {
	return Mapper{d, rot, source}.RectToCanvas(r)
}
