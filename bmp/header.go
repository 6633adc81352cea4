package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// FileHeader is the BITMAPFILEHEADER structure.
type FileHeader struct {
	Type      [2]byte // Always "BM"
	Size      uint32  // Size of the whole file
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // Offset to the pixel data
}

// InfoHeader is the BITMAPINFOHEADER structure.
type InfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32 // Positive for bottom-up rows
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32 // Size of the pixel data including padding
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// Header holds both headers found at the start of a bitmap. It implements
// the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Header struct {
	File FileHeader
	Info InfoHeader
}

func newHeader(width, height int) Header {
	size := uint32(stride(width) * height)
	return Header{
		File: FileHeader{
			Type:    [2]byte{'B', 'M'},
			Size:    headerSize + size,
			OffBits: headerSize,
		},
		Info: InfoHeader{
			Size:          infoHeaderSize,
			Width:         int32(width),
			Height:        int32(height),
			Planes:        1,
			BitCount:      bitsPerPixel,
			SizeImage:     size,
			XPelsPerMeter: pixelsPerMetre,
			YPelsPerMeter: pixelsPerMetre,
		},
	}
}

// Stride returns the padded row length in bytes.
func (h Header) Stride() int {
	return stride(int(h.Info.Width))
}

// MarshalBinary encodes the headers into their 54 byte form
func (h *Header) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(headerSize)

	if err := binary.Write(b, binary.LittleEndian, &h.File); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, &h.Info); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the headers from their 54 byte form
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < headerSize {
		return errors.New("bmp: insufficient header data")
	}

	r := bytes.NewReader(b)
	if err := binary.Read(r, binary.LittleEndian, &h.File); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &h.Info)
}
