// Package color maps the hunk-rendering roles used by the diff encoder
// (context/meta/frag/old/new) to ANSI escape sequences.
package color

import "github.com/mgutz/ansi"

// A ColorKey is a key into a ColorConfig map, one per rendering role in a
// unified diff.
type ColorKey string

// ColorKeys.
const (
	Context ColorKey = "context"
	Meta    ColorKey = "meta"
	Frag    ColorKey = "frag"
	Old     ColorKey = "old"
	New     ColorKey = "new"
)

// A ColorConfig is a color configuration. A nil or empty ColorConfig
// corresponds to no color.
type ColorConfig map[ColorKey]string

var defaultColorConfig = ColorConfig{
	Context: "",
	Meta:    ansi.ColorCode("default+b"),
	Frag:    ansi.ColorCode("cyan"),
	Old:     ansi.ColorCode("red"),
	New:     ansi.ColorCode("green"),
}

// NewColorConfig returns the default ColorConfig, suitable for a TTY.
func NewColorConfig() ColorConfig {
	cc := make(ColorConfig, len(defaultColorConfig))
	for key, value := range defaultColorConfig {
		cc[key] = value
	}
	return cc
}

// Reset returns the ANSI escape sequence that resets the color set for key.
// If no color was set for key, no reset is needed and it returns "".
func (cc ColorConfig) Reset(key ColorKey) string {
	if cc[key] == "" {
		return ""
	}
	return ansi.Reset
}
