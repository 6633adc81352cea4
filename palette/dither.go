package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Algorithm identifies a dithering algorithm.
type Algorithm string

// FloydSteinberg is the only supported algorithm
const FloydSteinberg Algorithm = "floydSteinberg"

var (
	// ErrUnknownAlgorithm is returned for any algorithm other than FloydSteinberg
	ErrUnknownAlgorithm = errors.New("palette: unknown dithering algorithm")

	// ErrUnmappedColor is returned by Remap for a pixel not in the source
	// palette
	ErrUnmappedColor = errors.New("palette: colour not in source palette")

	errMismatch = errors.New("palette: source and target palettes differ in length")
	errEmpty    = errors.New("palette: palette needs at least two colours")
)

// ParseAlgorithm returns the Algorithm named by s.
func ParseAlgorithm(s string) (Algorithm, error) {
	if a := Algorithm(s); a == FloydSteinberg {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Ditherer reduces images to a palette and translates between palettes.
// Neither method modifies its input.
type Ditherer interface {
	// Dither returns m reduced to the colours in p, with the same bounds
	Dither(m image.Image, a Algorithm, p color.Palette) (image.Image, error)
	// Remap returns m with every pixel equal to from[i] replaced by to[i]
	Remap(m image.Image, from, to color.Palette) (image.Image, error)
}

// ErrorDiffusion implements Ditherer with error diffusion dithering.
type ErrorDiffusion struct {
	// Serpentine alternates the scan direction on each row
	Serpentine bool
}

var _ Ditherer = ErrorDiffusion{}

// Dither implements Ditherer. The result is always an *image.Paletted using
// a copy of p.
func (e ErrorDiffusion) Dither(m image.Image, a Algorithm, p color.Palette) (image.Image, error) {
	if a != FloydSteinberg {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
	if len(p) < 2 {
		return nil, errEmpty
	}

	d := dither.NewDitherer(p)
	if d == nil {
		return nil, errEmpty
	}
	d.Matrix = dither.FloydSteinberg
	d.Serpentine = e.Serpentine

	// Work on a copy starting at (0, 0) as the ditherer indexes rows from
	// the origin
	b := m.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), m, b.Min, draw.Src)

	pm := d.DitherPaletted(src)
	pm.Rect = b

	return pm, nil
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Remap implements Ditherer. Paletted images have their palette entries
// swapped; anything else is remapped pixel by pixel.
func (ErrorDiffusion) Remap(m image.Image, from, to color.Palette) (image.Image, error) {
	if len(from) != len(to) {
		return nil, errMismatch
	}

	lookup := make(map[color.RGBA]color.RGBA, len(from))
	for i := range from {
		k := rgba(from[i])
		if _, ok := lookup[k]; !ok {
			lookup[k] = rgba(to[i])
		}
	}

	if pm, ok := m.(*image.Paletted); ok {
		dup := *pm
		dup.Palette = make(color.Palette, len(pm.Palette))
		for i, c := range pm.Palette {
			n, ok := lookup[rgba(c)]
			if !ok {
				n = rgba(c)
			}
			dup.Palette[i] = n
		}
		dup.Pix = append([]uint8(nil), pm.Pix...)

		// Only colours actually used have to be mapped
		used := make([]bool, len(pm.Palette))
		for _, i := range dup.Pix {
			used[i] = true
		}
		for i, c := range pm.Palette {
			if _, ok := lookup[rgba(c)]; used[i] && !ok {
				return nil, fmt.Errorf("%w: %v", ErrUnmappedColor, c)
			}
		}

		return &dup, nil
	}

	b := m.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := rgba(m.At(x, y))
			n, ok := lookup[c]
			if !ok {
				return nil, fmt.Errorf("%w: %v at %d,%d", ErrUnmappedColor, c, x, y)
			}
			out.SetRGBA(x, y, n)
		}
	}

	return out, nil
}
