package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/artpalette/internal/colour"
)

const (
	// DefaultBarWidth is the width of each bar when Bars.Width is unset.
	DefaultBarWidth = 100

	// DefaultBarHeight is used when Bars.Height is unset.
	DefaultBarHeight = 100
)

// Bars renders the palette as a PNG of equal-width vertical bars, in palette order.
type Bars struct {
	// Width of the whole image. Zero gives DefaultBarWidth per colour.
	Width  int
	Height int
}

// Image draws the bars. Bar i spans columns [i*Width/n, (i+1)*Width/n).
func (b *Bars) Image(p *colour.Palette) (*image.NRGBA, error) {
	n := p.Len()
	if n == 0 {
		return nil, errors.New("cannot draw an empty palette")
	}

	width, height := b.Width, b.Height
	if width <= 0 {
		width = DefaultBarWidth * n
	}
	if height <= 0 {
		height = DefaultBarHeight
	}
	if width < n {
		return nil, fmt.Errorf("width %d is too small for %d bars", width, n)
	}

	dst := imaging.New(width, height, color.Transparent)
	for i, c := range p.Colors {
		x0, x1 := i*width/n, (i+1)*width/n
		dst = imaging.Paste(dst, imaging.New(x1-x0, height, c), image.Pt(x0, 0))
	}
	return dst, nil
}

// Render encodes the bars as PNG.
func (b *Bars) Render(w io.Writer, p *colour.Palette) error {
	img, err := b.Image(p)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode bars: %w", err)
	}
	return nil
}
