/*
Package palette reduces images to the fixed six colour set used by Spectra 6
e-paper panels and translates the result into the colour codes the panel
expects.

Dithering works with perceptual colours that resemble what the panel actually
shows; once dithered, each perceptual colour is replaced one for one by the
panel's native code.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Perceptual is the dithering palette, in the same order as the device
// colours.
var Perceptual = mustParse(
	"#191E21", // black
	"#E8E8E8", // white
	"#2157BA", // blue
	"#125F20", // green
	"#B21318", // red
	"#EFDE44", // yellow
)

var devices = map[string]color.Palette{
	"spectra6": mustParse(
		"#000000",
		"#FFFFFF",
		"#0000FF",
		"#00FF00",
		"#FF0000",
		"#FFFF00",
	),
}

// ErrUnknownDevice is returned for a device identifier with no known colours.
var ErrUnknownDevice = errors.New("palette: unknown device")

// DeviceColors returns the native colour codes for the device, in the same
// order as Perceptual.
func DeviceColors(id string) (color.Palette, error) {
	p, ok := devices[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}
	return append(color.Palette(nil), p...), nil
}

// ParseHex parses a colour of the form #RRGGBB.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("palette: invalid colour %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("palette: invalid colour %q: %w", s, err)
	}
	c.A = 0xff
	return c, nil
}

func mustParse(colors ...string) color.Palette {
	p := make(color.Palette, 0, len(colors))
	for _, s := range colors {
		c, err := ParseHex(s)
		if err != nil {
			panic(err)
		}
		p = append(p, c)
	}
	return p
}
