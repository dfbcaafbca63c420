// Package reducer summarises an image as a grid of block-averaged Lab colours.
package reducer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/artpalette/internal/colour"
)

const (
	// DefaultSize is the edge length every image is resized to before gridding.
	DefaultSize = 512

	// DefaultBlockSize is the block edge length in pixels. The trailing block
	// on each axis may be narrower.
	DefaultBlockSize = 17

	// DefaultBlurSigma is the Gaussian blur radius applied to each block.
	DefaultBlurSigma = 5.0
)

// Config holds the reduction constants.
type Config struct {
	Size      int
	BlockSize int
	BlurSigma float64
}

// DefaultConfig returns the standard 512px / 17px / sigma 5 configuration.
func DefaultConfig() Config {
	return Config{
		Size:      DefaultSize,
		BlockSize: DefaultBlockSize,
		BlurSigma: DefaultBlurSigma,
	}
}

// Validate checks that all constants are usable.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("resize dimension must be positive, got %d", c.Size)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("block size must be positive, got %d", c.BlockSize)
	}
	if c.BlockSize > c.Size {
		return fmt.Errorf("block size %d exceeds resize dimension %d", c.BlockSize, c.Size)
	}
	if c.BlurSigma < 0 {
		return fmt.Errorf("blur sigma must not be negative, got %v", c.BlurSigma)
	}
	return nil
}

// BlocksPerAxis returns ceil(Size / BlockSize).
func (c Config) BlocksPerAxis() int {
	return (c.Size + c.BlockSize - 1) / c.BlockSize
}

// Rows returns the number of labmat rows Reduce produces.
func (c Config) Rows() int {
	n := c.BlocksPerAxis()
	return n * n
}

// Reduce resizes img, converts it to Lab, splits it into blocks, blurs each
// block and returns the mean Lab colour of every block. Rows are ordered column by column: all blocks
// of the first x interval top to bottom, then the next interval.
func Reduce(img image.Image, cfg Config) (colour.Labmat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	resized := imaging.Resize(img, cfg.Size, cfg.Size, imaging.Lanczos)

	var kernel []float64
	if cfg.BlurSigma > 0 {
		kernel = gaussianKernel(cfg.BlurSigma)
	}

	labmat := make(colour.Labmat, 0, cfg.Rows())
	for x0 := 0; x0 < cfg.Size; x0 += cfg.BlockSize {
		for y0 := 0; y0 < cfg.Size; y0 += cfg.BlockSize {
			rect := image.Rect(x0, y0, min(x0+cfg.BlockSize, cfg.Size), min(y0+cfg.BlockSize, cfg.Size))
			labmat = append(labmat, blockMean(resized, rect, kernel))
		}
	}

	return labmat, nil
}

// blockMean converts the block to Lab planes, blurs each plane within the
// block and returns the mean Lab colour.
func blockMean(img *image.NRGBA, rect image.Rectangle, kernel []float64) colour.Lab {
	w, h := rect.Dx(), rect.Dy()
	l, a, b := newPlane(w, h), newPlane(w, h), newPlane(w, h)
	for y := range h {
		for x := range w {
			i := img.PixOffset(rect.Min.X+x, rect.Min.Y+y)
			lab := colour.LabFromRGB(
				float64(img.Pix[i])/255.0,
				float64(img.Pix[i+1])/255.0,
				float64(img.Pix[i+2])/255.0,
			)
			l[y][x], a[y][x], b[y][x] = lab.L, lab.A, lab.B
		}
	}

	if kernel != nil {
		l, a, b = l.blur(kernel), a.blur(kernel), b.blur(kernel)
	}
	return colour.Lab{L: l.mean(), A: a.mean(), B: b.mean()}
}
