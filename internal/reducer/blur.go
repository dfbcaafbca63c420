package reducer

import "math"

// plane is one Lab channel of a block, indexed [y][x].
type plane [][]float64

func newPlane(w, h int) plane {
	p := make(plane, h)
	for y := range p {
		p[y] = make([]float64, w)
	}
	return p
}

// gaussianKernel returns a normalised 1D kernel covering three sigmas either side.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blur convolves p with kernel along both axes, replicating edge samples so
// nothing outside the plane contributes.
func (p plane) blur(kernel []float64) plane {
	h := len(p)
	if h == 0 {
		return p
	}
	w := len(p[0])
	radius := len(kernel) / 2

	horizontal := newPlane(w, h)
	for y := range h {
		for x := range w {
			var sum float64
			for i, k := range kernel {
				sum += p[y][clampInt(x+i-radius, 0, w-1)] * k
			}
			horizontal[y][x] = sum
		}
	}

	dst := newPlane(w, h)
	for y := range h {
		for x := range w {
			var sum float64
			for i, k := range kernel {
				sum += horizontal[clampInt(y+i-radius, 0, h-1)][x] * k
			}
			dst[y][x] = sum
		}
	}
	return dst
}

func (p plane) mean() float64 {
	var sum float64
	n := 0
	for _, row := range p {
		for _, v := range row {
			sum += v
		}
		n += len(row)
	}
	return sum / float64(n)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
