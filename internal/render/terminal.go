package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/artpalette/internal/colour"
)

// ColourMode decides whether ANSI colour is emitted.
type ColourMode int

const (
	// ColourAuto emits colour when writing to a terminal and NO_COLOR is unset.
	ColourAuto ColourMode = iota
	ColourAlways
	ColourNever
)

// ParseColourMode parses auto, always or never.
func ParseColourMode(s string) (ColourMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColourAuto, nil
	case "always":
		return ColourAlways, nil
	case "never":
		return ColourNever, nil
	default:
		return ColourAuto, fmt.Errorf("invalid colour mode %q (valid: auto, always, never)", s)
	}
}

const defaultSwatchWidth = 9

// Terminal renders truecolour swatches. When colour is disabled it falls back
// to one hex code per line.
type Terminal struct {
	// Width of each swatch in cells.
	Width int

	// Labels prints one labelled swatch per line instead of a single strip.
	Labels bool

	Colour ColourMode
}

// Render writes the palette to w.
func (t *Terminal) Render(w io.Writer, p *colour.Palette) error {
	width := t.Width
	if width <= 0 {
		width = defaultSwatchWidth
	}

	var sb strings.Builder
	switch {
	case !t.colourEnabled(w):
		for _, rgb := range p.ToRGBSlice() {
			sb.WriteString(rgb.Hex())
			sb.WriteByte('\n')
		}
	case t.Labels:
		for _, rgb := range p.ToRGBSlice() {
			fmt.Fprintf(&sb, "%s  %s\n", labelledBlock(rgb, rgb.Hex(), width), rgb)
		}
	default:
		for _, rgb := range p.ToRGBSlice() {
			sb.WriteString(block(rgb, width))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Terminal) colourEnabled(w io.Writer) bool {
	switch t.Colour {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func rgbColor(c colour.RGB) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
