package bmp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"
)

func twoByTwo() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.SetRGBA(0, 0, color.RGBA{0xff, 0x00, 0x00, 0xff})
	m.SetRGBA(1, 0, color.RGBA{0x00, 0xff, 0x00, 0xff})
	m.SetRGBA(0, 1, color.RGBA{0x00, 0x00, 0xff, 0xff})
	m.SetRGBA(1, 1, color.RGBA{0xff, 0xff, 0xff, 0xff})
	return m
}

func TestMarshal(t *testing.T) {
	expected := []byte{
		// File header
		'B', 'M',
		0x46, 0x00, 0x00, 0x00, // 70 bytes
		0x00, 0x00, 0x00, 0x00,
		0x36, 0x00, 0x00, 0x00, // pixels at 54

		// Info header
		0x28, 0x00, 0x00, 0x00, // 40 bytes
		0x02, 0x00, 0x00, 0x00, // width
		0x02, 0x00, 0x00, 0x00, // height
		0x01, 0x00, // planes
		0x18, 0x00, // 24 bits
		0x00, 0x00, 0x00, 0x00, // no compression
		0x10, 0x00, 0x00, 0x00, // 2 rows of 8 bytes
		0x13, 0x0b, 0x00, 0x00, // 2835
		0x13, 0x0b, 0x00, 0x00, // 2835
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,

		// Bottom row: blue, white, padding
		0xff, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00,
		// Top row: red, green, padding
		0x00, 0x00, 0xff, 0x00, 0xff, 0x00, 0x00, 0x00,
	}

	b, err := Marshal(twoByTwo())
	require.Nil(t, err)
	assert.Equal(t, expected, b)
}

func TestMarshalDeterministic(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 37, 11))
	for i := range m.Pix {
		m.Pix[i] = byte(i * 7)
	}

	b1, err := Marshal(m)
	require.Nil(t, err)
	b2, err := Marshal(m)
	require.Nil(t, err)

	assert.Equal(t, b1, b2)
	assert.Len(t, b1, headerSize+stride(37)*11)
}

func TestMarshalIgnoresAlpha(t *testing.T) {
	opaque := twoByTwo()
	translucent := twoByTwo()
	for i := 3; i < len(translucent.Pix); i += 4 {
		translucent.Pix[i] = 0x80
	}

	b1, err := Marshal(opaque)
	require.Nil(t, err)
	b2, err := Marshal(translucent)
	require.Nil(t, err)

	assert.Equal(t, b1, b2)
}

func TestStride(t *testing.T) {
	tables := []struct {
		width, stride int
	}{
		{1, 4},
		{2, 8},
		{3, 12},
		{4, 12},
		{5, 16},
		{1200, 3600},
	}

	for _, table := range tables {
		assert.Equal(t, table.stride, stride(table.width), "width %d", table.width)
	}
}

func testImages() []image.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, 3, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			rgba.SetRGBA(x, y, color.RGBA{uint8(x * 80), uint8(y * 50), uint8(x*y*10 + 5), 0xff})
		}
	}

	// Offset bounds and a non-RGBA pixel format
	nrgba := image.NewNRGBA(image.Rect(10, 20, 15, 27))
	for y := 20; y < 27; y++ {
		for x := 10; x < 15; x++ {
			nrgba.SetNRGBA(x, y, color.NRGBA{uint8(x * 9), uint8(y * 3), 0x42, 0xff})
		}
	}

	sub := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range sub.Pix {
		sub.Pix[i] = byte(i)
	}
	for i := 3; i < len(sub.Pix); i += 4 {
		sub.Pix[i] = 0xff
	}

	pal := image.NewPaletted(image.Rect(0, 0, 6, 2), color.Palette{
		color.RGBA{0x19, 0x1e, 0x21, 0xff},
		color.RGBA{0xef, 0xde, 0x44, 0xff},
	})
	pal.SetColorIndex(3, 1, 1)

	return []image.Image{rgba, nrgba, sub.SubImage(image.Rect(2, 3, 7, 6)), pal}
}

func TestEncodeDecode(t *testing.T) {
	for _, m := range testImages() {
		b := new(bytes.Buffer)
		require.Nil(t, Encode(b, m))

		decoded, err := xbmp.Decode(bytes.NewReader(b.Bytes()))
		require.Nil(t, err)

		r := m.Bounds()
		require.Equal(t, r.Dx(), decoded.Bounds().Dx())
		require.Equal(t, r.Dy(), decoded.Bounds().Dy())

		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				expected := color.NRGBAModel.Convert(m.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
				actual := color.NRGBAModel.Convert(decoded.At(x, y)).(color.NRGBA)
				assert.Equal(t, expected, actual, "pixel %d,%d", x, y)
			}
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	_, err := Marshal(image.NewRGBA(image.Rectangle{}))
	assert.Equal(t, errInvalidSize, err)

	assert.Equal(t, errInvalidSize, Encode(new(bytes.Buffer), image.NewRGBA(image.Rect(0, 0, 0, 10))))
}

type errWriter struct{}

var errWrite = errors.New("write failed")

func (errWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestEncodeWriteError(t *testing.T) {
	// Large enough to overflow the bufio buffer before the final flush
	m := image.NewRGBA(image.Rect(0, 0, 100, 100))
	assert.Equal(t, errWrite, Encode(errWriter{}, m))
}
