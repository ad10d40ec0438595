package core

import (
	"fmt"
	"strings"
)

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette available to games.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = [...]string{
	ColorDefault:      "default",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorBlue:         "blue",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorWhite:        "white",
	ColorBrightRed:    "bright-red",
	ColorBrightGreen:  "bright-green",
	ColorBrightYellow: "bright-yellow",
	ColorBrightBlue:   "bright-blue",
	ColorBrightWhite:  "bright-white",
	ColorOrange:       "orange",
	ColorGray:         "gray",
}

// String returns the palette name used in configuration files.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor looks up a palette entry by name (case-insensitive).
// An empty name yields ColorDefault.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}
