package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette colors, as hex so they can be tuned in one place.
const (
	hexHealth  = "#3CB043"
	hexTemp    = "#3FC5F0"
	hexMissing = "#555555"
	hexShield  = "#F5D547"
	hexTitle   = "#F08A24"
	hexWarning = "#E8463A"
)

var (
	colorHealth  = MustParseHexColor(hexHealth)
	colorTemp    = MustParseHexColor(hexTemp)
	colorMissing = MustParseHexColor(hexMissing)
	colorShield  = MustParseHexColor(hexShield)
	colorTitle   = MustParseHexColor(hexTitle)
	colorWarning = MustParseHexColor(hexWarning)
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
