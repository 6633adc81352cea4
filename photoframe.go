/*
Package photoframe is a library for preparing photos for Spectra 6 e-paper
photo frames.

A photo is loaded into an Editor where it can be rotated and cropped to the
3:4 aspect ratio of the frame. The crop is then exported: rendered at
1200x1600, dithered to the six colours the panel can show, translated to the
panel's native colour codes and encoded as an uncompressed 24-bit bitmap
which can be uploaded to the frame.
*/
package photoframe

import (
	"context"
	"image/color"
	"log"

	"github.com/bodgit/photoframe/palette"
)

// Uploader sends a finished bitmap to a device, returning where it was sent.
type Uploader interface {
	Upload(context.Context, []byte) (string, error)
}

// PhotoFrame exports and uploads crops for one device.
type PhotoFrame struct {
	ditherer palette.Ditherer
	uploader Uploader
	history  *History
	logger   *log.Logger
	device   string
	colors   color.Palette
}

// New returns a PhotoFrame for the given device. Both uploader and history
// may be nil if nothing will be uploaded.
func New(ditherer palette.Ditherer, uploader Uploader, history *History, device string, logger *log.Logger) (*PhotoFrame, error) {
	colors, err := palette.DeviceColors(device)
	if err != nil {
		return nil, err
	}

	return &PhotoFrame{
		ditherer: ditherer,
		uploader: uploader,
		history:  history,
		logger:   logger,
		device:   device,
		colors:   colors,
	}, nil
}

// Close closes the upload history, if any.
func (p *PhotoFrame) Close() error {
	if p.history == nil {
		return nil
	}
	return p.history.Close()
}
