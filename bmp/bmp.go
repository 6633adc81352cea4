/*
Package bmp implements an encoder for uncompressed 24-bit Windows bitmaps.

The file is written as a 14 byte file header, a 40 byte BITMAPINFOHEADER and
then the pixel rows, bottom row first. Each pixel is stored as three bytes in
blue, green, red order and each row is padded with zeroes to a multiple of
four bytes. All multi-byte fields are little-endian. There is no colour table
and no compression so the file is always 54 + stride * height bytes.
*/
package bmp

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	headerSize     = fileHeaderSize + infoHeaderSize
	bitsPerPixel   = 24
	bytesPerPixel  = bitsPerPixel >> 3

	// 2835 pixels per metre is roughly 72 DPI
	pixelsPerMetre = 2835
)

// stride returns the length in bytes of a padded row of width pixels.
func stride(width int) int {
	return (bitsPerPixel*width + 31) / 32 * 4
}
