package scene

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Named colors available to the user. Highlight marks entities that sit
// entirely inside the clip window.
var (
	Red     = colorful.Color{R: 1, G: 0, B: 0}
	Green   = colorful.Color{R: 0, G: 1, B: 0}
	Blue    = colorful.Color{R: 0, G: 0, B: 1}
	Yellow  = colorful.Color{R: 1, G: 1, B: 0}
	Cyan    = colorful.Color{R: 0, G: 1, B: 1}
	Magenta = colorful.Color{R: 1, G: 0, B: 1}
	White   = colorful.Color{R: 1, G: 1, B: 1}

	Highlight = Green
)

// Palette maps color names to colors, in the order the keyboard binds them.
var Palette = []struct {
	Name  string
	Color colorful.Color
}{
	{"red", Red},
	{"green", Green},
	{"blue", Blue},
	{"yellow", Yellow},
	{"cyan", Cyan},
	{"magenta", Magenta},
	{"white", White},
}

// ParseColor accepts a palette name or a "#rrggbb" hex string.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Palette {
		if p.Name == s {
			return p.Color, nil
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// ColorName returns the palette name of c, or its hex form when c is not a
// palette color.
func ColorName(c colorful.Color) string {
	for _, p := range Palette {
		if p.Color == c {
			return p.Name
		}
	}
	return c.Hex()
}
