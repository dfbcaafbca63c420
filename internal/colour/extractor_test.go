package colour

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// redBlueLabmat returns 60 rows: half pure or dark red, half pure or dark blue.
func redBlueLabmat() Labmat {
	var m Labmat
	for i := range 30 {
		v := 0.6 + 0.4*float64(i%3)/2
		m = append(m, LabFromRGB(v, 0, 0))
	}
	for i := range 30 {
		v := 0.6 + 0.4*float64(i%3)/2
		m = append(m, LabFromRGB(0, 0, v))
	}
	return m
}

// wheelLabmat returns rows spread over several hues and lightness levels.
func wheelLabmat() Labmat {
	bases := [][3]float64{
		{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}, {1, 0, 1},
	}
	var m Labmat
	for _, b := range bases {
		for _, scale := range []float64{0.4, 0.55, 0.7, 0.85, 1} {
			m = append(m, LabFromRGB(b[0]*scale, b[1]*scale, b[2]*scale))
		}
	}
	return m
}

func TestExtractOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ExtractOptions
		rows    int
		wantErr bool
	}{
		{name: "defaults", opts: DefaultExtractOptions(), rows: 961},
		{name: "k equals rows", opts: ExtractOptions{Colours: 4, Lightness: 1}, rows: 4},
		{name: "zero colours", opts: ExtractOptions{Colours: 0, Lightness: 0.5}, rows: 961, wantErr: true},
		{name: "negative colours", opts: ExtractOptions{Colours: -3, Lightness: 0.5}, rows: 961, wantErr: true},
		{name: "too many colours", opts: ExtractOptions{Colours: 962, Lightness: 0.5}, rows: 961, wantErr: true},
		{name: "lightness below range", opts: ExtractOptions{Colours: 5, Lightness: -0.1}, rows: 961, wantErr: true},
		{name: "lightness above range", opts: ExtractOptions{Colours: 5, Lightness: 1.1}, rows: 961, wantErr: true},
		{name: "lightness NaN", opts: ExtractOptions{Colours: 5, Lightness: math.NaN()}, rows: 961, wantErr: true},
		{name: "empty labmat", opts: DefaultExtractOptions(), rows: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate(tt.rows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate() error = %v, want it to wrap ErrInvalidParameter", err)
			}
		})
	}
}

func TestExtractRejectsZeroColours(t *testing.T) {
	opts := DefaultExtractOptions()
	opts.Colours = 0

	palette, err := Extract(redBlueLabmat(), opts)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Extract() error = %v, want ErrInvalidParameter", err)
	}
	if palette != nil {
		t.Errorf("Extract() palette = %v, want nil", palette)
	}
}

func TestExtractRedBlue(t *testing.T) {
	opts := DefaultExtractOptions()
	opts.Colours = 2

	palette, err := Extract(redBlueLabmat(), opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("Extract() returned %d colours, want 2", palette.Len())
	}

	first := ToRGB(palette.Colors[0])
	second := ToRGB(palette.Colors[1])
	if first.R == 0 || first.B != 0 {
		t.Errorf("first colour = %s, want red", first.Hex())
	}
	if second.B == 0 || second.R != 0 {
		t.Errorf("second colour = %s, want blue", second.Hex())
	}
}

func TestExtractSingleCluster(t *testing.T) {
	labmat := redBlueLabmat()
	opts := DefaultExtractOptions()
	opts.Colours = 1
	opts.Lightness = 0.25

	palette, err := Extract(labmat, opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 1 {
		t.Fatalf("Extract() returned %d colours, want 1", palette.Len())
	}

	want := ToRGB(Representative(labmat, opts.Lightness).Color())
	if got := ToRGB(palette.Colors[0]); got != want {
		t.Errorf("Extract() colour = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestExtractDeterministic(t *testing.T) {
	opts := DefaultExtractOptions()
	opts.Colours = 4

	first, err := Extract(wheelLabmat(), opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for range 5 {
		again, err := Extract(wheelLabmat(), opts)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if diff := cmp.Diff(first.ToHex(), again.ToHex()); diff != "" {
			t.Fatalf("Extract() not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestExtractHueOrdering(t *testing.T) {
	for _, k := range []int{2, 3, 6, 9} {
		opts := DefaultExtractOptions()
		opts.Colours = k

		palette, err := Extract(wheelLabmat(), opts)
		if err != nil {
			t.Fatalf("k=%d: Extract() error = %v", k, err)
		}
		if palette.Len() != k {
			t.Fatalf("k=%d: Extract() returned %d colours", k, palette.Len())
		}
		for i := 1; i < palette.Len(); i++ {
			if Hue(palette.Colors[i-1]) > Hue(palette.Colors[i]) {
				t.Errorf("k=%d: hues not ascending at %d: %v", k, i, palette.ToHex())
			}
		}
	}
}

func TestExtractDegenerateInput(t *testing.T) {
	labmat := make(Labmat, 20)
	for i := range labmat {
		labmat[i] = LabFromRGB(0.2, 0.4, 0.6)
	}

	opts := DefaultExtractOptions()
	opts.Colours = 7

	palette, err := Extract(labmat, opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 7 {
		t.Fatalf("Extract() returned %d colours, want 7", palette.Len())
	}
	for _, hex := range palette.ToHex() {
		if hex != "#336699" {
			t.Errorf("colour = %s, want #336699", hex)
		}
	}
}

func TestSelectionRank(t *testing.T) {
	tests := []struct {
		size      int
		lightness float64
		want      int
	}{
		{size: 10, lightness: 0, want: 1},
		{size: 10, lightness: 0.01, want: 1},
		{size: 10, lightness: 0.5, want: 5},
		{size: 10, lightness: 0.51, want: 6},
		{size: 10, lightness: 1, want: 10},
		{size: 3, lightness: 0.5, want: 2},
		{size: 1, lightness: 0.7, want: 1},
	}

	for _, tt := range tests {
		if got := SelectionRank(tt.size, tt.lightness); got != tt.want {
			t.Errorf("SelectionRank(%d, %v) = %d, want %d", tt.size, tt.lightness, got, tt.want)
		}
	}
}

func TestRepresentativeLightnessMonotonic(t *testing.T) {
	members := wheelLabmat()
	prev := math.Inf(-1)
	for i := 0; i <= 20; i++ {
		rep := Representative(members, float64(i)/20)
		if rep.L < prev {
			t.Fatalf("lightness %v selected L=%v below previous %v", float64(i)/20, rep.L, prev)
		}
		prev = rep.L
	}
}

func TestRepresentativeDoesNotReorderInput(t *testing.T) {
	members := Labmat{{L: 0.9}, {L: 0.1}, {L: 0.5}}
	want := append(Labmat(nil), members...)

	if got := Representative(members, 0); got.L != 0.1 {
		t.Errorf("Representative(0) L = %v, want 0.1", got.L)
	}
	if got := Representative(members, 1); got.L != 0.9 {
		t.Errorf("Representative(1) L = %v, want 0.9", got.L)
	}
	if diff := cmp.Diff(want, members); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestSortByHueStable(t *testing.T) {
	darkRed := color.RGBA{R: 100, A: 255}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	colors := []color.Color{blue, darkRed, green, red}
	SortByHue(colors)

	want := []color.Color{darkRed, red, green, blue}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Errorf("SortByHue() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractOneRowPerCluster(t *testing.T) {
	labmat := make(Labmat, 5)
	for i := range labmat {
		labmat[i] = LabFromRGB(0.8, 0.1, 0.1)
	}

	opts := DefaultExtractOptions()
	opts.Colours = len(labmat)

	palette, err := Extract(labmat, opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != len(labmat) {
		t.Errorf("Extract() returned %d colours, want %d", palette.Len(), len(labmat))
	}
}
