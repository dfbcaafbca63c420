package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func twoGroups() [][2]float64 {
	var points [][2]float64
	for i := range 10 {
		points = append(points, [2]float64{0.7 + float64(i)*0.001, 0.6})
	}
	for i := range 10 {
		points = append(points, [2]float64{-0.2, -0.9 + float64(i)*0.001})
	}
	return points
}

func TestClusterSeparatesGroups(t *testing.T) {
	for _, seed := range []int64{1, 7, DefaultSeed, 99999} {
		got := Cluster(twoGroups(), 2, seed, 10)

		for i := 1; i < 10; i++ {
			if got[i] != got[0] {
				t.Errorf("seed %d: point %d in cluster %d, want %d", seed, i, got[i], got[0])
			}
			if got[10+i] != got[10] {
				t.Errorf("seed %d: point %d in cluster %d, want %d", seed, 10+i, got[10+i], got[10])
			}
		}
		if got[0] == got[10] {
			t.Errorf("seed %d: both groups share cluster %d", seed, got[0])
		}
	}
}

func TestClusterDeterministic(t *testing.T) {
	points := twoGroups()
	want := Cluster(points, 3, 42, 10)
	for range 5 {
		if diff := cmp.Diff(want, Cluster(points, 3, 42, 10)); diff != "" {
			t.Fatalf("Cluster() not deterministic (-want +got):\n%s", diff)
		}
	}
}

func TestClusterKeepsEveryClusterPopulated(t *testing.T) {
	points := make([][2]float64, 12)
	for i := range points {
		points[i] = [2]float64{0.1, 0.1}
	}

	got := Cluster(points, 5, DefaultSeed, 10)

	sizes := make([]int, 5)
	for _, c := range got {
		sizes[c]++
	}
	for c, size := range sizes {
		if size == 0 {
			t.Errorf("cluster %d is empty: %v", c, sizes)
		}
	}
}

func TestClusterEdgeCases(t *testing.T) {
	if got := Cluster(nil, 3, 1, 10); len(got) != 0 {
		t.Errorf("Cluster(nil) = %v, want empty", got)
	}

	if diff := cmp.Diff([]int{0, 0, 0}, Cluster(twoGroups()[:3], 1, 1, 10)); diff != "" {
		t.Errorf("Cluster(k=1) mismatch (-want +got):\n%s", diff)
	}

	got := Cluster(twoGroups()[:2], 5, 1, 10)
	for _, c := range got {
		if c < 0 || c >= 2 {
			t.Errorf("Cluster(k>n) assigned %d, want index below 2", c)
		}
	}
}
