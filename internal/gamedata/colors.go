package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

// ParseColor accepts either a hex color or a tcell color name ("red").
func ParseColor(s string) (tcell.Color, error) {
	if c, ok := tcell.ColorNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return ParseHexColor(s)
}

// TCellColor returns the class color, falling back to white.
func (c *ClassDef) TCellColor() tcell.Color {
	color, err := ParseColor(c.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}
