package bmp

import (
	"errors"
	"io"
)

var (
	errNotEnough   = errors.New("bmp: not enough header data")
	errNotBitmap   = errors.New("bmp: not a bitmap")
	errUnsupported = errors.New("bmp: unsupported format")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// DecodeHeader reads the headers of a bitmap from r. Only the uncompressed
// 24-bit bottom-up layout written by Encode is accepted.
func DecodeHeader(r io.Reader) (Header, error) {
	var tmp [headerSize]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return Header{}, err
		}
		return Header{}, errNotEnough
	}

	var h Header
	if err := h.UnmarshalBinary(tmp[:]); err != nil {
		return Header{}, err
	}

	if h.File.Type != [2]byte{'B', 'M'} {
		return Header{}, errNotBitmap
	}

	if h.Info.Size != infoHeaderSize || h.Info.BitCount != bitsPerPixel || h.Info.Compression != 0 || h.Info.Width <= 0 || h.Info.Height <= 0 {
		return Header{}, errUnsupported
	}

	return h, nil
}
