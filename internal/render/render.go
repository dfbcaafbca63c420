// Package render writes palettes as terminal swatches, text or PNG pixel bars.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/artpalette/internal/colour"
)

// Renderer writes a palette to w.
type Renderer interface {
	Render(w io.Writer, p *colour.Palette) error
}

// Format names an output format.
type Format string

const (
	FormatSwatch Format = "swatch"
	FormatHex    Format = "hex"
	FormatRGB    Format = "rgb"
	FormatJSON   Format = "json"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []Format {
	return []Format{FormatSwatch, FormatHex, FormatRGB, FormatJSON}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidFormats() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (valid: swatch, hex, rgb, json)", s)
}

// New returns the renderer for a format. mode applies to swatches and source
// labels JSON output.
func New(f Format, mode ColourMode, source string) (Renderer, error) {
	switch f {
	case FormatSwatch:
		return &Terminal{Labels: true, Colour: mode}, nil
	case FormatHex, FormatRGB, FormatJSON:
		return &Text{Format: f, Source: source}, nil
	default:
		return nil, fmt.Errorf("invalid format %q", f)
	}
}
