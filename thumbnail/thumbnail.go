/*
Package thumbnail implements the small preview kept alongside each upload.

A thumbnail is the image scaled to fit inside 150 by 200 pixels, preserving
its aspect ratio, reduced to at most 64 colours with a median cut palette and
stored as a paletted PNG.
*/
package thumbnail

const (
	// Width is the maximum width of a thumbnail
	Width = 150
	// Height is the maximum height of a thumbnail
	Height = 200
	// Colors is the maximum number of colours in a thumbnail palette
	Colors = 64
)
