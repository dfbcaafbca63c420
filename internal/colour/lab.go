// Package colour provides colour-space conversion and palette extraction.
package colour

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Lab is a colour in CIE L*a*b* space (D65 white point).
// Values use go-colorful's scale: L is in [0,1] and a, b are roughly in [-1,1].
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Labmat holds one Lab sample per reduced image block.
type Labmat []Lab

// LabFromRGB converts sRGB channels in [0,1] to Lab.
func LabFromRGB(r, g, b float64) Lab {
	l, a, bb := colorful.Color{R: r, G: g, B: b}.Lab()
	return Lab{L: l, A: a, B: bb}
}

// LabFromColor converts any color.Color to Lab, ignoring alpha.
func LabFromColor(c color.Color) Lab {
	cr, cg, cb, _ := c.RGBA()
	return LabFromRGB(float64(cr)/65535.0, float64(cg)/65535.0, float64(cb)/65535.0)
}

// RGB converts the sample back to sRGB. Out-of-gamut channels are clipped to [0,1].
func (l Lab) RGB() (r, g, b float64) {
	c := colorful.Lab(l.L, l.A, l.B).Clamped()
	return c.R, c.G, c.B
}

// Color returns the gamut-clipped sRGB colour as an opaque color.RGBA.
func (l Lab) Color() color.Color {
	r, g, b := l.RGB()
	return color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 255}
}

// Chroma returns the (a, b) pair used as the clustering coordinate.
func (l Lab) Chroma() [2]float64 {
	return [2]float64{l.A, l.B}
}

// Hue returns the HSV hue of c in degrees, in [0,360).
// Achromatic colours have hue 0.
func Hue(c color.Color) float64 {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	h, _, _ := cc.Hsv()
	return h
}

// toByte rounds a [0,1] channel to 8 bits.
func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
