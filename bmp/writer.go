package bmp

import (
	"bufio"
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"math"
)

var errInvalidSize = errors.New("bmp: invalid image size")

type encoder struct {
	w io.Writer
}

// row fills b with the pixels of row y in blue, green, red order. Any
// padding at the end of b is left untouched.
func row(b []byte, m image.Image, y int) {
	r := m.Bounds()

	if rgba, ok := m.(*image.RGBA); ok {
		// Read the buffer directly, dropping alpha
		pix := rgba.Pix[rgba.PixOffset(r.Min.X, y):]
		for x := 0; x < r.Dx(); x++ {
			b[x*bytesPerPixel+0] = pix[x*4+2]
			b[x*bytesPerPixel+1] = pix[x*4+1]
			b[x*bytesPerPixel+2] = pix[x*4+0]
		}
		return
	}

	for x := 0; x < r.Dx(); x++ {
		c := color.NRGBAModel.Convert(m.At(r.Min.X+x, y)).(color.NRGBA)
		b[x*bytesPerPixel+0] = c.B
		b[x*bytesPerPixel+1] = c.G
		b[x*bytesPerPixel+2] = c.R
	}
}

func (e *encoder) encode(m image.Image) error {
	r := m.Bounds()
	h := newHeader(r.Dx(), r.Dy())

	b, err := h.MarshalBinary()
	if err != nil {
		return err
	}

	w := bufio.NewWriter(e.w)
	if _, err := w.Write(b); err != nil {
		return err
	}

	// Bottom row first
	tmp := make([]byte, h.Stride())
	for y := r.Max.Y - 1; y >= r.Min.Y; y-- {
		row(tmp, m, y)
		if _, err := w.Write(tmp); err != nil {
			return err
		}
	}

	return w.Flush()
}

func checkSize(r image.Rectangle) error {
	if r.Empty() || int64(stride(r.Dx()))*int64(r.Dy()) > math.MaxInt32-headerSize {
		return errInvalidSize
	}
	return nil
}

// Encode writes the Image m to w as an uncompressed 24-bit bitmap. Any alpha
// channel is discarded.
func Encode(w io.Writer, m image.Image) error {
	if err := checkSize(m.Bounds()); err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(m)
}

// Marshal returns the complete bitmap file for m.
func Marshal(m image.Image) ([]byte, error) {
	r := m.Bounds()
	if err := checkSize(r); err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	b.Grow(headerSize + stride(r.Dx())*r.Dy())

	if err := Encode(b, m); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
