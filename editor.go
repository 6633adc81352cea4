package photoframe

import (
	"image"
	"io"
	"sync"

	"github.com/bodgit/photoframe/crop"
	"github.com/bodgit/photoframe/render"
	"github.com/disintegration/imaging"
)

// Decode reads an image, applying any EXIF orientation. A decode failure is
// the only check made on the image.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// Editor owns the state of an interactive crop: the loaded image, its
// rotation and the crop geometry on a canvas of fixed size. It is safe for
// concurrent use.
type Editor struct {
	mu       sync.Mutex
	canvas   crop.Size
	source   image.Image
	rotation crop.Rotation
	state    crop.State
}

// NewEditor returns an Editor for a canvas of the given size with no image
// loaded.
func NewEditor(canvas crop.Size) *Editor {
	return &Editor{
		canvas: canvas,
	}
}

func size(m image.Image) crop.Size {
	b := m.Bounds()
	return crop.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (e *Editor) refit() {
	e.state = crop.NewState(size(e.source), e.rotation, e.canvas)
}

// Load replaces the image being edited, resetting the rotation and crop.
func (e *Editor) Load(m image.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.source = m
	e.rotation = crop.Rotate0
	e.refit()
}

// Loaded reports whether an image has been loaded.
func (e *Editor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.source != nil
}

// Rotate turns the image a further 90 degrees clockwise and refits the crop.
func (e *Editor) Rotate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return
	}

	e.rotation = e.rotation.Next()
	e.refit()
}

// Rotation returns the current rotation.
func (e *Editor) Rotation() crop.Rotation {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rotation
}

// PointerDown starts a move or resize gesture at p.
func (e *Editor) PointerDown(p crop.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return
	}

	e.state = crop.Begin(e.state, p)
}

// PointerMove updates any active gesture and returns the cursor to show at p.
func (e *Editor) PointerMove(p crop.Point) crop.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return crop.CursorDefault
	}

	e.state = crop.Update(e.state, p)

	return crop.Hint(e.state, p)
}

// PointerUp ends any active gesture.
func (e *Editor) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = crop.End(e.state)
}

// State returns a copy of the crop state.
func (e *Editor) State() crop.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Snapshot captures what is needed to render the current crop. It returns
// false if no image is loaded.
func (e *Editor) Snapshot() (render.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return render.Snapshot{}, false
	}

	return render.Snapshot{
		Source:   e.source,
		Rotation: e.rotation,
		Display:  e.state.Display,
		Crop:     e.state.Crop,
	}, true
}
