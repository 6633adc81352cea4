package crop

import "math"

// Fit scales an image of the given size, after applying rotation r, to the
// largest rectangle that fits centred inside canvas. It returns that display
// rectangle along with the largest crop rectangle of ratio Aspect centred
// inside it. When the display rectangle is too small to hold a MinSize crop
// the crop is still the largest that fits, and resizing it is refused.
func Fit(image Size, r Rotation, canvas Size) (Display, Rect) {
	rs := r.Rotated(image)

	scale := math.Min(canvas.W/rs.W, canvas.H/rs.H)

	d := Display{
		W:     rs.W * scale,
		H:     rs.H * scale,
		Scale: scale,
	}
	d.X = (canvas.W - d.W) / 2
	d.Y = (canvas.H - d.H) / 2

	var c Rect
	if d.W/d.H > Aspect {
		c.H = d.H
		c.W = c.H * Aspect
	} else {
		c.W = d.W
		c.H = c.W / Aspect
	}
	c.X = d.X + (d.W-c.W)/2
	c.Y = d.Y + (d.H-c.H)/2

	return d, c
}

// NewState returns an idle State holding the display and crop rectangles
// computed by Fit.
func NewState(image Size, r Rotation, canvas Size) State {
	d, c := Fit(image, r, canvas)
	return State{
		Display: d,
		Crop:    c,
	}
}
