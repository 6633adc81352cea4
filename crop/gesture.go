package crop

import "math"

// Mode is the current pointer interaction.
type Mode int

// Interaction modes
const (
	Idle Mode = iota
	Moving
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Corner identifies one of the four corners of the crop rectangle.
type Corner int

// Corners, in hit test order
const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var corners = [...]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "bottom-right"
	}
}

// Opposite returns the corner diagonally across from c.
func (c Corner) Opposite() Corner {
	return BottomRight - c
}

// Corner returns the position of corner c of r.
func (r Rect) Corner(c Corner) Point {
	switch c {
	case TopLeft:
		return Point{r.X, r.Y}
	case TopRight:
		return Point{r.X + r.W, r.Y}
	case BottomLeft:
		return Point{r.X, r.Y + r.H}
	default:
		return Point{r.X + r.W, r.Y + r.H}
	}
}

// State is the complete state of the crop editor. Display is read-only to the
// gesture functions; Crop, Mode, Corner and Offset are owned by them.
type State struct {
	Display Display
	Crop    Rect
	Mode    Mode

	// Corner is the dragged corner while Resizing
	Corner Corner
	// Offset is the pointer position relative to the crop origin while Moving
	Offset Point
}

// hitCorner reports which corner, if any, has its hit zone under p.
func hitCorner(r Rect, p Point) (Corner, bool) {
	for _, c := range corners {
		cp := r.Corner(c)
		if math.Abs(p.X-cp.X) <= HandleSize && math.Abs(p.Y-cp.Y) <= HandleSize {
			return c, true
		}
	}
	return 0, false
}

// Begin starts a gesture at p. Corner hit zones are tested before the body of
// the rectangle as a corner zone extends outside the rectangle and overlaps
// its edges. A press outside both leaves the state idle.
func Begin(s State, p Point) State {
	if c, ok := hitCorner(s.Crop, p); ok {
		s.Mode = Resizing
		s.Corner = c
		s.Offset = Point{}
		return s
	}

	if s.Crop.Contains(p) {
		s.Mode = Moving
		s.Offset = Point{p.X - s.Crop.X, p.Y - s.Crop.Y}
		return s
	}

	return End(s)
}

// Update applies a pointer move to p for the active gesture. It is a no-op
// when idle.
func Update(s State, p Point) State {
	switch s.Mode {
	case Moving:
		s.Crop = move(s.Display, s.Crop, Point{p.X - s.Offset.X, p.Y - s.Offset.Y})
	case Resizing:
		s.Crop = resize(s.Display, s.Crop, s.Corner, p)
	}
	return s
}

// End finishes any active gesture.
func End(s State) State {
	s.Mode = Idle
	s.Corner = 0
	s.Offset = Point{}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func move(d Display, r Rect, origin Point) Rect {
	r.X = clamp(origin.X, d.X, d.X+d.W-r.W)
	r.Y = clamp(origin.Y, d.Y, d.Y+d.H-r.H)
	return r
}

func resize(d Display, r Rect, c Corner, p Point) Rect {
	anchor := r.Corner(c.Opposite())

	// Room between the anchor and the display edge on the dragged side
	left := c == TopLeft || c == BottomLeft
	top := c == TopLeft || c == TopRight

	maxW := d.X + d.W - anchor.X
	if left {
		maxW = anchor.X - d.X
	}
	maxH := d.Y + d.H - anchor.Y
	if top {
		maxH = anchor.Y - d.Y
	}

	w := math.Abs(p.X - anchor.X)
	h := w / Aspect

	if h > maxH {
		h = maxH
		w = h * Aspect
	}
	if w > maxW {
		w = maxW
		h = w / Aspect
	}

	if w < MinSize || h < MinSize {
		return r
	}

	x, y := anchor.X, anchor.Y
	if left {
		x -= w
	}
	if top {
		y -= h
	}

	return Rect{x, y, w, h}
}
