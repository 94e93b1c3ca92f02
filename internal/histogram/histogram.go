// Package histogram provides fixed-dimension normalized histograms and a
// similarity measure between them, used by the cost model's appearance
// term. Similarity is the Bhattacharyya coefficient from gonum's stat
// package, already in the dependency graph alongside gonum/mat, rather than
// a hand-rolled histogram distance.
package histogram

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BinEdges returns bins+1 evenly spaced edges covering [lo, hi], with the
// endpoint forced exact to avoid the float64 drift a naive start+i*step
// accumulation introduces over many bins.
func BinEdges(lo, hi float64, bins int) []float64 {
	n := bins + 1
	if n < 2 {
		if n == 1 {
			return []float64{lo}
		}
		return nil
	}

	edges := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[n-1] = hi
	return edges
}

// Normalize scales counts in place so they sum to 1. A histogram with zero
// total mass is left untouched (it is the caller's job to treat mass==0 as
// "uninitialized").
func Normalize(counts []float64) {
	var sum float64
	for _, c := range counts {
		sum += c
	}
	if sum == 0 {
		return
	}
	for i := range counts {
		counts[i] /= sum
	}
}

// Similarity returns the Bhattacharyya coefficient between two normalized
// histograms of equal length, a value in [0,1] where 1 means identical
// distributions. gonum's stat.Bhattacharyya reports the Bhattacharyya
// distance (-ln of the coefficient), so the coefficient itself is
// recovered with exp(-distance).
func Similarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	dist := stat.Bhattacharyya(a, b)
	return math.Exp(-dist)
}
