package state

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var ErrUnknownColor = errors.New("color not in palette")

// Swatch is a named palette entry.
type Swatch struct {
	Name  string
	Color color.NRGBA
}

// Palette is the fixed, ordered set of ink colors offered to the presenter.
type Palette []Swatch

// DefaultPalette mirrors the swatches of the toolbar.
func DefaultPalette() Palette {
	return Palette{
		{Name: "red", Color: color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}},
		{Name: "orange", Color: color.NRGBA{R: 0xfb, G: 0x8c, B: 0x00, A: 0xff}},
		{Name: "yellow", Color: color.NRGBA{R: 0xfd, G: 0xd8, B: 0x35, A: 0xff}},
		{Name: "green", Color: color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}},
		{Name: "blue", Color: color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}},
		{Name: "black", Color: color.NRGBA{A: 0xff}},
		{Name: "white", Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	}
}

// Lookup finds a swatch by case-insensitive name.
func (p Palette) Lookup(name string) (Swatch, error) {
	for _, s := range p {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Swatch{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Names lists the swatch names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return names
}

// ParseHex reads "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.New("expected 6 or 8 hex digits")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}
