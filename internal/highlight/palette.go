package highlight

import (
	"errors"
	"fmt"
	"strings"
)

// Color is a highlight token, e.g. "bg-red-600".
type Color string

// None is the absence of a highlight.
const None Color = ""

var ErrUnknownButton = errors.New("unknown highlight button")

// Palette is the fixed, mutually exclusive set of highlight colors.
var Palette = []Color{
	"bg-red-600",
	"bg-blue-600",
	"bg-green-600",
	"bg-yellow-600",
	"bg-pink-600",
	"bg-indigo-600",
	"bg-teal-600",
	"bg-cyan-600",
	"bg-lime-600",
	"bg-emerald-600",
	"bg-orange-600",
	"bg-amber-600",
	"bg-fuchsia-600",
	"bg-rose-600",
	"bg-violet-600",
	"bg-sky-600",
}

// ColorFromName builds the palette token for a hue name.
func ColorFromName(name string) Color {
	return Color("bg-" + name + "-600")
}

// Name returns the hue segment of the token ("red" for "bg-red-600").
func (c Color) Name() string {
	parts := strings.Split(string(c), "-")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// Valid reports whether c is a palette member.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

func (c Color) String() string { return string(c) }

// ButtonID is the identifier of the palette button that arms c.
func ButtonID(c Color) string {
	return "hl-" + c.Name()
}

// ColorForButton derives a color from a button identifier. The hue is the
// second hyphen-delimited segment, so "hl-red" and "color-red-btn" both map
// to "bg-red-600".
func ColorForButton(buttonID string) (Color, error) {
	parts := strings.Split(buttonID, "-")
	if len(parts) < 2 || parts[1] == "" {
		return None, fmt.Errorf("%w: %q", ErrUnknownButton, buttonID)
	}
	c := ColorFromName(parts[1])
	if !c.Valid() {
		return None, fmt.Errorf("%w: %q", ErrUnknownButton, buttonID)
	}
	return c, nil
}
