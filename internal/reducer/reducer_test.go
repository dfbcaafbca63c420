package reducer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jmylchreest/artpalette/internal/colour"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// splitImage is red on the left half and blue on the right half.
func splitImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if x < w/2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestDefaultConfigRows(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.BlocksPerAxis(); got != 31 {
		t.Errorf("BlocksPerAxis() = %d, want 31", got)
	}
	if got := cfg.Rows(); got != 961 {
		t.Errorf("Rows() = %d, want 961", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "no blur", cfg: Config{Size: 64, BlockSize: 8, BlurSigma: 0}},
		{name: "zero size", cfg: Config{Size: 0, BlockSize: 8, BlurSigma: 1}, wantErr: true},
		{name: "zero block", cfg: Config{Size: 64, BlockSize: 0, BlurSigma: 1}, wantErr: true},
		{name: "block larger than image", cfg: Config{Size: 16, BlockSize: 17, BlurSigma: 1}, wantErr: true},
		{name: "negative blur", cfg: Config{Size: 64, BlockSize: 8, BlurSigma: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReduceRowCountIndependentOfInputSize(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	small, err := Reduce(solidImage(100, 100, red), DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce(100x100) error = %v", err)
	}
	large, err := Reduce(solidImage(1200, 900, red), DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce(1200x900) error = %v", err)
	}

	if len(small) != 961 || len(large) != 961 {
		t.Fatalf("row counts = %d, %d, want 961", len(small), len(large))
	}
	if diff := cmp.Diff(small, large); diff != "" {
		t.Errorf("labmats differ (-small +large):\n%s", diff)
	}

	want := colour.LabFromRGB(1, 0, 0)
	if diff := cmp.Diff(want, small[0], approx); diff != "" {
		t.Errorf("solid red row mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceRowOrderIsColumnMajor(t *testing.T) {
	cfg := Config{Size: 8, BlockSize: 3, BlurSigma: 0}

	labmat, err := Reduce(splitImage(8, 8), cfg)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if len(labmat) != cfg.Rows() {
		t.Fatalf("Reduce() returned %d rows, want %d", len(labmat), cfg.Rows())
	}

	red := colour.LabFromRGB(1, 0, 0)
	blue := colour.LabFromRGB(0, 0, 1)
	for i := range 3 {
		if diff := cmp.Diff(red, labmat[i], approx); diff != "" {
			t.Errorf("row %d should be red (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(blue, labmat[6+i], approx); diff != "" {
			t.Errorf("row %d should be blue (-want +got):\n%s", 6+i, diff)
		}
	}
}

func TestReduceDeterministic(t *testing.T) {
	img := splitImage(300, 200)

	first, err := Reduce(img, DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	second, err := Reduce(img, DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Reduce() not deterministic (-first +second):\n%s", diff)
	}
}

func TestReduceRejectsMissingImage(t *testing.T) {
	if _, err := Reduce(nil, DefaultConfig()); err == nil {
		t.Error("Reduce(nil) expected error")
	}
	if _, err := Reduce(image.NewRGBA(image.Rectangle{}), DefaultConfig()); err == nil {
		t.Error("Reduce(empty) expected error")
	}
	if _, err := Reduce(splitImage(4, 4), Config{}); err == nil {
		t.Error("Reduce(zero config) expected error")
	}
}

func TestReduceBlursInLab(t *testing.T) {
	img := splitImage(17, 17)

	sharp, err := Reduce(img, Config{Size: 17, BlockSize: 17, BlurSigma: 0})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	blurred, err := Reduce(img, Config{Size: 17, BlockSize: 17, BlurSigma: 5})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}

	// A normalised blur over Lab planes moves the block mean only through
	// edge replication, well under 0.01 on every axis.
	near := cmpopts.EquateApprox(0, 0.01)
	if diff := cmp.Diff(sharp[0], blurred[0], near); diff != "" {
		t.Errorf("blurred block mean drifted from the Lab mean (-sharp +blurred):\n%s", diff)
	}
}

func TestGaussianKernel(t *testing.T) {
	kernel := gaussianKernel(5)
	if len(kernel) != 31 {
		t.Fatalf("len(kernel) = %d, want 31", len(kernel))
	}

	var sum float64
	for i, k := range kernel {
		sum += k
		if k != kernel[len(kernel)-1-i] {
			t.Errorf("kernel not symmetric at %d", i)
		}
	}
	if diff := cmp.Diff(1.0, sum, approx); diff != "" {
		t.Errorf("kernel sum mismatch (-want +got):\n%s", diff)
	}
	if kernel[15] <= kernel[14] {
		t.Error("kernel should peak at its centre")
	}
}

func TestPlaneBlur(t *testing.T) {
	flat := newPlane(5, 3)
	for y := range flat {
		for x := range flat[y] {
			flat[y][x] = 0.4
		}
	}
	got := flat.blur(gaussianKernel(2))
	for y := range got {
		for x := range got[y] {
			if diff := cmp.Diff(0.4, got[y][x], approx); diff != "" {
				t.Errorf("constant plane changed at (%d,%d):\n%s", x, y, diff)
			}
		}
	}

	edge := newPlane(4, 1)
	edge[0][2], edge[0][3] = 1, 1
	got = edge.blur(gaussianKernel(1))
	if !(got[0][0] < got[0][1] && got[0][1] < got[0][2] && got[0][2] < got[0][3]) {
		t.Errorf("edge not smoothed monotonically: %v", got[0])
	}
	if got[0][0] <= 0 || got[0][3] >= 1 {
		t.Errorf("edge values not mixed: %v", got[0])
	}
}
