package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-6

func assertRectInDelta(t *testing.T, expected, actual Rect) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, epsilon, "x")
	assert.InDelta(t, expected.Y, actual.Y, epsilon, "y")
	assert.InDelta(t, expected.W, actual.W, epsilon, "w")
	assert.InDelta(t, expected.H, actual.H, epsilon, "h")
}

func assertInvariants(t *testing.T, s State) {
	t.Helper()
	d, c := s.Display, s.Crop
	assert.InDelta(t, Aspect, c.W/c.H, epsilon, "aspect")
	assert.GreaterOrEqual(t, c.X, d.X-epsilon, "left edge")
	assert.GreaterOrEqual(t, c.Y, d.Y-epsilon, "top edge")
	assert.LessOrEqual(t, c.X+c.W, d.X+d.W+epsilon, "right edge")
	assert.LessOrEqual(t, c.Y+c.H, d.Y+d.H+epsilon, "bottom edge")
}

func TestFit(t *testing.T) {
	tables := []struct {
		name    string
		image   Size
		r       Rotation
		canvas  Size
		display Display
		crop    Rect
	}{
		{
			name:    "landscape",
			image:   Size{4000, 3000},
			r:       Rotate0,
			canvas:  Size{800, 600},
			display: Display{0, 0, 800, 600, 0.2},
			crop:    Rect{175, 0, 450, 600},
		},
		{
			name:    "landscape rotated",
			image:   Size{4000, 3000},
			r:       Rotate90,
			canvas:  Size{800, 600},
			display: Display{175, 0, 450, 600, 0.15},
			crop:    Rect{175, 0, 450, 600},
		},
		{
			name:    "square",
			image:   Size{1000, 1000},
			r:       Rotate180,
			canvas:  Size{500, 800},
			display: Display{0, 150, 500, 500, 0.5},
			crop:    Rect{62.5, 150, 375, 500},
		},
		{
			name:    "tall",
			image:   Size{600, 1600},
			r:       Rotate0,
			canvas:  Size{800, 800},
			display: Display{250, 0, 300, 800, 0.5},
			crop:    Rect{250, 200, 300, 400},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			d, c := Fit(table.image, table.r, table.canvas)
			assertRectInDelta(t, table.display.Rect(), d.Rect())
			assert.InDelta(t, table.display.Scale, d.Scale, epsilon)
			assertRectInDelta(t, table.crop, c)
		})
	}
}

func TestFitInvariants(t *testing.T) {
	canvas := Size{800, 600}
	for w := 100.0; w <= 6000; w += 371 {
		for h := 100.0; h <= 6000; h += 293 {
			for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
				s := NewState(Size{w, h}, r, canvas)
				assertInvariants(t, s)
				assert.Equal(t, Idle, s.Mode)

				// The display must touch the canvas on at least one axis
				touches := s.Display.W > canvas.W-epsilon || s.Display.H > canvas.H-epsilon
				assert.True(t, touches)
			}
		}
	}
}

func TestRotation(t *testing.T) {
	r := Rotate0
	for _, expected := range []Rotation{Rotate90, Rotate180, Rotate270, Rotate0} {
		r = r.Next()
		assert.Equal(t, expected, r)
	}
	assert.True(t, Rotate270.Valid())
	assert.False(t, Rotation(45).Valid())
	assert.Equal(t, Size{3, 4}, Rotate90.Rotated(Size{4, 3}))
	assert.Equal(t, Size{4, 3}, Rotate180.Rotated(Size{4, 3}))
}

func TestFitBelowMinimum(t *testing.T) {
	// A panorama leaves a display only 30 units tall
	s := NewState(Size{10000, 500}, Rotate0, Size{600, 800})
	assertInvariants(t, s)
	assertRectInDelta(t, Rect{0, 385, 600, 30}, s.Display.Rect())
	assertRectInDelta(t, Rect{288.75, 385, 22.5, 30}, s.Crop)

	// Resizing can never reach MinSize so is refused
	r := Update(Begin(s, s.Crop.Corner(BottomRight)), Point{600, 800})
	assert.Equal(t, Resizing, r.Mode)
	assertRectInDelta(t, s.Crop, r.Crop)

	// Moving still works and stays inside the display
	m := Update(Begin(s, Point{300, 400}), Point{0, 0})
	assert.Equal(t, Moving, m.Mode)
	assertRectInDelta(t, Rect{0, 385, 22.5, 30}, m.Crop)
	assertInvariants(t, m)
}
