package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasToSource(t *testing.T) {
	source := Size{4000, 3000}
	canvas := Size{800, 600}

	tables := []struct {
		name     string
		r        Rotation
		rect     func(Display) Rect
		expected Rect
	}{
		{
			name:     "whole display",
			r:        Rotate0,
			rect:     Display.Rect,
			expected: Rect{0, 0, 4000, 3000},
		},
		{
			name: "top-left quadrant",
			r:    Rotate0,
			rect: func(d Display) Rect {
				return Rect{d.X, d.Y, d.W / 2, d.H / 2}
			},
			expected: Rect{0, 0, 2000, 1500},
		},
		{
			name:     "whole display rotated 90",
			r:        Rotate90,
			rect:     Display.Rect,
			expected: Rect{0, 0, 4000, 3000},
		},
		{
			name: "top-left quadrant rotated 90",
			r:    Rotate90,
			rect: func(d Display) Rect {
				return Rect{d.X, d.Y, d.W / 2, d.H / 2}
			},
			expected: Rect{0, 1500, 2000, 1500},
		},
		{
			name: "top-left quadrant rotated 180",
			r:    Rotate180,
			rect: func(d Display) Rect {
				return Rect{d.X, d.Y, d.W / 2, d.H / 2}
			},
			expected: Rect{2000, 1500, 2000, 1500},
		},
		{
			name: "top-left quadrant rotated 270",
			r:    Rotate270,
			rect: func(d Display) Rect {
				return Rect{d.X, d.Y, d.W / 2, d.H / 2}
			},
			expected: Rect{2000, 0, 2000, 1500},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			d, _ := Fit(source, table.r, canvas)
			assertRectInDelta(t, table.expected, CanvasToSource(d, table.r, source, table.rect(d)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	source := Size{4000, 3000}
	canvas := Size{800, 600}

	for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		s := NewState(source, r, canvas)
		s.Crop = Rect{s.Display.X + 13.25, s.Display.Y + 7.5, 90, 120}

		got := SourceToCanvas(s.Display, r, source, CanvasToSource(s.Display, r, source, s.Crop))
		assertRectInDelta(t, s.Crop, got)

		// Source rectangles keep the rotated orientation
		src := CanvasToSource(s.Display, r, source, s.Crop)
		if r.Swapped() {
			assert.InDelta(t, s.Crop.H/s.Display.Scale, src.W, epsilon)
		} else {
			assert.InDelta(t, s.Crop.W/s.Display.Scale, src.W, epsilon)
		}
	}
}

func TestMatrix(t *testing.T) {
	source := Size{640, 480}
	canvas := Size{1000, 700}
	points := []Point{{0, 0}, {640, 0}, {0, 480}, {123.5, 77.25}}

	for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		d, _ := Fit(source, r, canvas)
		m := Mapper{d, r, source}
		a := m.Matrix()
		for _, p := range points {
			expected := m.ToCanvas(p)
			assert.InDelta(t, expected.X, a[0]*p.X+a[1]*p.Y+a[2], epsilon)
			assert.InDelta(t, expected.Y, a[3]*p.X+a[4]*p.Y+a[5], epsilon)

			back := m.ToSource(expected)
			assert.InDelta(t, p.X, back.X, epsilon)
			assert.InDelta(t, p.Y, back.Y, epsilon)
		}

		// The source corners land on the display corners
		assertRectInDelta(t, d.Rect(), m.RectToCanvas(Rect{0, 0, source.W, source.H}))
	}
}
