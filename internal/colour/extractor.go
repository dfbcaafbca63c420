package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"
)

// DefaultSeed is the clustering seed used when the caller does not choose one.
const DefaultSeed int64 = 1234

// ErrInvalidParameter is wrapped by every extraction parameter error.
var ErrInvalidParameter = errors.New("invalid parameter")

// ExtractOptions holds the caller-facing extraction parameters.
type ExtractOptions struct {
	// Colours is the number of clusters, and so of palette entries.
	Colours int

	// Lightness picks the representative of each cluster: 0 selects the darkest
	// member, 1 the lightest.
	Lightness float64

	// Seed initialises k-means centre selection.
	Seed int64

	// MaxIterations bounds the k-means refinement loop.
	MaxIterations int
}

// DefaultExtractOptions returns the default extraction options.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Colours:       5,
		Lightness:     0.5,
		Seed:          DefaultSeed,
		MaxIterations: 10,
	}
}

// Validate checks the options against a labmat with the given number of rows.
func (o ExtractOptions) Validate(rows int) error {
	if rows < 1 {
		return fmt.Errorf("%w: labmat is empty", ErrInvalidParameter)
	}
	if o.Colours < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, o.Colours)
	}
	if o.Colours > rows {
		return fmt.Errorf("%w: colour count %d exceeds labmat rows (%d)", ErrInvalidParameter, o.Colours, rows)
	}
	if math.IsNaN(o.Lightness) || o.Lightness < 0 || o.Lightness > 1 {
		return fmt.Errorf("%w: lightness must be within [0, 1], got %v", ErrInvalidParameter, o.Lightness)
	}
	return nil
}

// Extract clusters the labmat on chroma and returns one colour per cluster,
// ordered by ascending HSV hue.
func Extract(labmat Labmat, opts ExtractOptions) (*Palette, error) {
	if err := opts.Validate(len(labmat)); err != nil {
		return nil, err
	}

	points := make([][2]float64, len(labmat))
	for i, row := range labmat {
		points[i] = row.Chroma()
	}
	assignments := Cluster(points, opts.Colours, opts.Seed, opts.MaxIterations)

	members := make([][]Lab, opts.Colours)
	for i, c := range assignments {
		members[c] = append(members[c], labmat[i])
	}

	reps := make([]Lab, 0, opts.Colours)
	for _, m := range members {
		reps = append(reps, Representative(m, opts.Lightness))
	}

	colors := make([]color.Color, len(reps))
	for i, rep := range reps {
		colors[i] = rep.Color()
	}
	SortByHue(colors)

	return NewPalette(colors), nil
}

// Representative returns the member at SelectionRank after ordering by L.
// members is not modified.
func Representative(members []Lab, lightness float64) Lab {
	sorted := slices.Clone(members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].L < sorted[j].L
	})
	return sorted[SelectionRank(len(sorted), lightness)-1]
}

// SelectionRank returns ceil(size*lightness) clamped to [1, size].
func SelectionRank(size int, lightness float64) int {
	rank := int(math.Ceil(float64(size) * lightness))
	return max(1, min(rank, size))
}

// SortByHue orders colours by HSV hue, keeping the relative order of equal hues.
func SortByHue(colors []color.Color) {
	hues := make([]float64, len(colors))
	idx := make([]int, len(colors))
	for i, c := range colors {
		idx[i] = i
		hues[i] = Hue(c)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return hues[idx[a]] < hues[idx[b]]
	})

	ordered := make([]color.Color, len(colors))
	for i, j := range idx {
		ordered[i] = colors[j]
	}
	copy(colors, ordered)
}
