/*
Package render produces the fixed resolution image described by a crop
rectangle drawn over a rotated source image.

Cropping, rotation and resampling happen in a single pass: one affine
transform maps source pixels straight onto the output so the source is only
ever filtered once.
*/
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/photoframe/crop"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	// Width is the width of every rendered image
	Width = 1200
	// Height is the height of every rendered image
	Height = 1600
)

// Snapshot is everything needed to render a crop. It is a copy of the editor
// state taken at the time of the request so later gestures cannot change an
// image that is still being rendered.
type Snapshot struct {
	Source   image.Image
	Rotation crop.Rotation
	Display  crop.Display
	Crop     crop.Rect
}

// Mapper returns the coordinate mapper for the snapshot.
func (s Snapshot) Mapper() crop.Mapper {
	b := s.Source.Bounds()
	return crop.Mapper{
		Display:  s.Display,
		Rotation: s.Rotation,
		Source:   crop.Size{W: float64(b.Dx()), H: float64(b.Dy())},
	}
}

// Region returns the area of the source image covered by the crop, in
// source pixel coordinates relative to the image bounds.
func (s Snapshot) Region() crop.Rect {
	return s.Mapper().RectToSource(s.Crop)
}

// transform returns the affine matrix mapping absolute source coordinates to
// an output image of width w and height h.
func (s Snapshot) transform(w, h int) f64.Aff3 {
	m := s.Mapper().Matrix()
	min := s.Source.Bounds().Min

	// Shift so the source bounds start at the origin
	m[2] -= m[0]*float64(min.X) + m[1]*float64(min.Y)
	m[5] -= m[3]*float64(min.X) + m[4]*float64(min.Y)

	kx := float64(w) / s.Crop.W
	ky := float64(h) / s.Crop.H

	return f64.Aff3{
		kx * m[0], kx * m[1], kx * (m[2] - s.Crop.X),
		ky * m[3], ky * m[4], ky * (m[5] - s.Crop.Y),
	}
}

// RenderSize renders the snapshot to a w by h image using Catmull-Rom
// resampling. Any output pixel not covered by the source is left opaque
// white.
func RenderSize(s Snapshot, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	xdraw.CatmullRom.Transform(dst, s.transform(w, h), s.Source, s.Source.Bounds(), xdraw.Over, nil)

	return dst
}

// Render renders the snapshot at Width by Height.
func Render(s Snapshot) *image.RGBA {
	return RenderSize(s, Width, Height)
}
