// Package kmeans partitions planar points into k clusters with Lloyd's algorithm and k-means++ seeding.
//
// All randomness comes from the caller's source, so a seeded source gives a reproducible partition.
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var ErrNoPoints = errors.New("kmeans: no points")

type Options struct {
	// Restarts is the number of independently seeded runs, the one with the lowest inertia is kept
	Restarts      int
	MaxIterations int
	// Tolerance stops refinement once the summed squared centroid shift falls below it
	Tolerance float64
}

func DefaultOptions() Options {
	return Options{
		Restarts:      10,
		MaxIterations: 300,
		Tolerance:     1e-4,
	}
}

type Result struct {
	Centroids []orb.Point
	// Labels[i] is the cluster index of points[i]
	Labels []int
	// Inertia is the sum of squared distances to the assigned centroids
	Inertia    float64
	Iterations int
}

// Size returns the member count of every cluster
func (r *Result) Size() []int {
	sizes := make([]int, len(r.Centroids))
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

func Fit(points []orb.Point, k int, rng *rand.Rand, opts Options) (*Result, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if k < 1 || k > len(points) {
		return nil, fmt.Errorf("kmeans: k = %d out of range [1, %d]", k, len(points))
	}
	if opts.Restarts < 1 {
		opts.Restarts = 1
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}

	var best *Result
	for range opts.Restarts {
		res := lloyd(points, seed(points, k, rng), opts)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// seed picks initial centroids with k-means++: each new centroid is drawn with probability
// proportional to the squared distance from the nearest centroid chosen so far
func seed(points []orb.Point, k int, rng *rand.Rand) []orb.Point {
	centroids := make([]orb.Point, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = planar.DistanceSquared(p, centroids[0])
	}
	for len(centroids) < k {
		total := 0.0
		for _, d := range dist {
			total += d
		}
		next := 0
		if total == 0 {
			// every point sits on a centroid already
			next = rng.IntN(len(points))
		} else {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target <= 0 {
					next = i
					break
				}
				next = i
			}
		}
		c := points[next]
		centroids = append(centroids, c)
		for i, p := range points {
			dist[i] = min(dist[i], planar.DistanceSquared(p, c))
		}
	}
	return centroids
}

func lloyd(points []orb.Point, centroids []orb.Point, opts Options) *Result {
	k := len(centroids)
	labels := make([]int, len(points))
	res := &Result{Centroids: centroids, Labels: labels}

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		res.Iterations = iter
		assign(points, centroids, labels)

		sums := make([]orb.Point, k)
		counts := make([]int, k)
		for i, p := range points {
			l := labels[i]
			sums[l][0] += p.X()
			sums[l][1] += p.Y()
			counts[l]++
		}
		next := make([]orb.Point, k)
		for c := range k {
			if counts[c] == 0 {
				next[c] = centroids[c]
				continue
			}
			next[c] = orb.Point{sums[c][0] / float64(counts[c]), sums[c][1] / float64(counts[c])}
		}
		relocateEmpty(points, next, labels, counts)

		shift := 0.0
		for c := range k {
			shift += planar.DistanceSquared(centroids[c], next[c])
		}
		centroids = next
		res.Centroids = centroids
		if shift <= opts.Tolerance {
			break
		}
	}
	assign(points, centroids, labels)
	res.Inertia = inertia(points, centroids, labels)
	return res
}

// relocateEmpty moves each empty cluster onto the point farthest from its own centroid
func relocateEmpty(points []orb.Point, centroids []orb.Point, labels []int, counts []int) {
	for c := range centroids {
		if counts[c] != 0 {
			continue
		}
		far, farDist := -1, -1.0
		for i, p := range points {
			if counts[labels[i]] <= 1 {
				continue
			}
			if d := planar.DistanceSquared(p, centroids[labels[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far == -1 {
			return
		}
		counts[labels[far]]--
		labels[far] = c
		counts[c] = 1
		centroids[c] = points[far]
	}
}

func assign(points []orb.Point, centroids []orb.Point, labels []int) {
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := planar.DistanceSquared(p, centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
	}
}

func inertia(points []orb.Point, centroids []orb.Point, labels []int) float64 {
	total := 0.0
	for i, p := range points {
		total += planar.DistanceSquared(p, centroids[labels[i]])
	}
	return total
}
