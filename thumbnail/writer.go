package thumbnail

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

var errEmpty = errors.New("thumbnail: empty image")

// Paletted scales m to fit a thumbnail and reduces its colours.
func Paletted(m image.Image) (*image.Paletted, error) {
	if m.Bounds().Empty() {
		return nil, errEmpty
	}

	// Never scaled up, the result always starts at (0, 0)
	small := imaging.Fit(m, Width, Height, imaging.Lanczos)
	b := small.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, Colors), small))
	draw.Draw(pm, b, small, b.Min, draw.Src)

	return pm, nil
}

// Encode writes a thumbnail of m to w as a PNG.
func Encode(w io.Writer, m image.Image) error {
	pm, err := Paletted(m)
	if err != nil {
		return err
	}

	e := png.Encoder{CompressionLevel: png.BestCompression}

	return e.Encode(w, pm)
}

// Marshal returns the PNG thumbnail of m.
func Marshal(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
