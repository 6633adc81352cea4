package crop

// Cursor is the pointer shape to show for a given position.
type Cursor int

// Cursor shapes
const (
	CursorDefault Cursor = iota
	CursorMove
	CursorNWSE
	CursorNESW
)

func (c Cursor) String() string {
	switch c {
	case CursorMove:
		return "move"
	case CursorNWSE:
		return "nwse-resize"
	case CursorNESW:
		return "nesw-resize"
	default:
		return "default"
	}
}

// Hint returns the cursor to show with the pointer at p. It uses the same
// priorities as Begin so the cursor always matches what a press would do.
func Hint(s State, p Point) Cursor {
	switch s.Mode {
	case Moving:
		return CursorMove
	case Resizing:
		return cornerCursor(s.Corner)
	}

	if c, ok := hitCorner(s.Crop, p); ok {
		return cornerCursor(c)
	}
	if s.Crop.Contains(p) {
		return CursorMove
	}
	return CursorDefault
}

func cornerCursor(c Corner) Cursor {
	if c == TopLeft || c == BottomRight {
		return CursorNWSE
	}
	return CursorNESW
}
