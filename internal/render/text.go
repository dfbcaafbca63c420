package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/artpalette/internal/colour"
)

// Text renders hex codes, rgb() triples or a JSON document.
type Text struct {
	Format Format

	// Source is recorded in JSON output.
	Source string
}

// Render writes the palette to w.
func (t *Text) Render(w io.Writer, p *colour.Palette) error {
	switch t.Format {
	case FormatJSON:
		doc := p.JSON()
		doc.Source = t.Source
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatRGB:
		for _, rgb := range p.ToRGBSlice() {
			if _, err := fmt.Fprintln(w, rgb.String()); err != nil {
				return err
			}
		}
	case FormatHex, "":
		for _, hex := range p.ToHex() {
			if _, err := fmt.Fprintln(w, hex); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("text renderer does not support format %q", t.Format)
	}
	return nil
}
