package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/bodgit/photoframe"
	"github.com/bodgit/photoframe/crop"
)

var (
	errBadDrag   = errors.New("drag must be of the form x1,y1:x2,y2")
	errBadRotate = errors.New("rotate must not be negative")
)

type drag struct {
	from, to crop.Point
}

func parseDrag(s string) (drag, error) {
	var d drag
	var rest string
	n, _ := fmt.Sscanf(s, "%g,%g:%g,%g%s", &d.from.X, &d.from.Y, &d.to.X, &d.to.Y, &rest)
	if n != 4 {
		return drag{}, fmt.Errorf("%w: %q", errBadDrag, s)
	}
	return d, nil
}

func parseCanvas(s string) (crop.Size, error) {
	var w, h int
	var rest string
	if n, _ := fmt.Sscanf(s, "%dx%d%s", &w, &h, &rest); n != 2 || w <= 0 || h <= 0 {
		return crop.Size{}, fmt.Errorf("canvas must be of the form WIDTHxHEIGHT: %q", s)
	}

	// Anything smaller cannot hold a crop of the minimum size
	if float64(w) < crop.MinSize || float64(h) < crop.MinSize/crop.Aspect {
		return crop.Size{}, fmt.Errorf("canvas must be at least %dx%d: %q", crop.MinSize, int(math.Ceil(crop.MinSize/crop.Aspect)), s)
	}

	return crop.Size{W: float64(w), H: float64(h)}, nil
}

// replay drives the editor the way a pointer would: press at the start of
// each drag, move to its end, then release.
func replay(e *photoframe.Editor, rotate int, drags []string) error {
	if rotate < 0 {
		return errBadRotate
	}

	for i := 0; i < rotate%4; i++ {
		e.Rotate()
	}

	for _, s := range drags {
		d, err := parseDrag(s)
		if err != nil {
			return err
		}
		e.PointerDown(d.from)
		e.PointerMove(d.to)
		e.PointerUp()
	}

	return nil
}
