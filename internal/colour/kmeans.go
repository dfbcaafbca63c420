package colour

import (
	"math"
	"math/rand"

	"github.com/muesli/clusters"
)

// chromaPoint is a labmat row projected onto the (a, b) plane.
type chromaPoint struct {
	index  int
	coords clusters.Coordinates
}

// Coordinates implements clusters.Observation.
func (p chromaPoint) Coordinates() clusters.Coordinates {
	return p.coords
}

// Distance implements clusters.Observation. It returns the squared Euclidean distance.
func (p chromaPoint) Distance(point clusters.Coordinates) float64 {
	return p.coords.Distance(point)
}

// Cluster partitions points into k groups with Lloyd's k-means and returns the
// cluster index (0..k-1) of every point.
//
// Initial centres are k distinct points drawn from a source seeded with seed, so
// identical input always yields the same partition. Clusters that lose all of
// their members take the farthest member of the largest cluster, which keeps every
// cluster populated while k <= len(points).
func Cluster(points [][2]float64, k int, seed int64, maxIterations int) []int {
	n := len(points)
	assignments := make([]int, n)
	if n == 0 || k <= 1 {
		return assignments
	}
	if k > n {
		k = n
	}
	if maxIterations < 1 {
		maxIterations = 1
	}

	observations := make(clusters.Observations, n)
	for i, p := range points {
		observations[i] = chromaPoint{index: i, coords: clusters.Coordinates{p[0], p[1]}}
	}

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible clustering, not security
	cc := make(clusters.Clusters, k)
	for i, idx := range rng.Perm(n)[:k] {
		cc[i].Center = append(clusters.Coordinates(nil), observations[idx].Coordinates()...)
	}

	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := 0
		for i := range cc {
			cc[i].Observations = clusters.Observations{}
		}
		for i, obs := range observations {
			nearest := cc.Nearest(obs)
			cc[nearest].Observations = append(cc[nearest].Observations, obs)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		if refillEmpty(cc, assignments) {
			changed++
		}

		for i := range cc {
			if center, err := cc[i].Observations.Center(); err == nil {
				cc[i].Center = center
			}
		}

		if changed == 0 {
			break
		}
	}

	return assignments
}

// refillEmpty moves a member into every empty cluster. Donors are taken from the
// currently largest cluster, choosing the member farthest from that cluster's
// centre (lowest index on ties). Reports whether anything moved.
func refillEmpty(cc clusters.Clusters, assignments []int) bool {
	moved := false
	for target := range cc {
		if len(cc[target].Observations) > 0 {
			continue
		}

		donor := -1
		for i := range cc {
			if len(cc[i].Observations) > 1 && (donor == -1 || len(cc[i].Observations) > len(cc[donor].Observations)) {
				donor = i
			}
		}
		if donor == -1 {
			return moved
		}

		farthest, best := 0, -math.MaxFloat64
		for j, obs := range cc[donor].Observations {
			if d := obs.Distance(cc[donor].Center); d > best {
				farthest, best = j, d
			}
		}

		obs := cc[donor].Observations[farthest]
		cc[donor].Observations = append(cc[donor].Observations[:farthest:farthest], cc[donor].Observations[farthest+1:]...)
		cc[target].Observations = clusters.Observations{obs}
		cc[target].Center = append(clusters.Coordinates(nil), obs.Coordinates()...)
		assignments[obs.(chromaPoint).index] = target
		moved = true
	}
	return moved
}
