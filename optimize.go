package main

import (
	"math"
	"slices"

	"honnef.co/go/curve"
)

const (
	minFlatRun    = 6
	minFlatStride = 3
	maxKeptGap    = 5
)

// OptimizePoints drops boundary points inside long runs of near constant
// thickness and keeps every point where the thickness changes. It returns the
// reduced boundary and the kept segment indices in ascending order.
//
// A run grows while values stay within tolerance of the run's first value.
// Runs of at least six values keep their first index and then every
// max(3, len/4)-th index; shorter runs are kept whole. Any circular gap wider
// than five segments between kept indices is then refilled with gap/3 evenly
// spaced indices.
func OptimizePoints(b Boundary, thickness []float64, tolerance float64) (Boundary, []int) {
	n := len(thickness)
	if n < 3 {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return b, indices
	}

	var kept []int
	for i := 0; i < n; {
		start := thickness[i]
		j := i + 1
		for j < n && math.Abs(thickness[j]-start) < tolerance {
			j++
		}

		length := j - i
		if length >= minFlatRun {
			kept = append(kept, i)
			stride := max(minFlatStride, length/4)
			for k := i + stride; k < j; k += stride {
				kept = append(kept, k)
			}
		} else {
			for k := i; k < j; k++ {
				kept = append(kept, k)
			}
		}
		i = j
	}
	kept = sortedUnique(kept)

	final := slices.Clone(kept)
	for idx, cur := range kept {
		next := kept[(idx+1)%len(kept)]
		gap := next - cur
		if idx+1 == len(kept) {
			gap = n - cur + next
		}
		if gap <= maxKeptGap {
			continue
		}

		fill := gap / 3
		for p := 1; p <= fill; p++ {
			final = append(final, (cur+p*gap/(fill+1))%n)
		}
	}
	final = sortedUnique(final)
	if len(final) < 3 {
		final = final[:0]
		for i := 0; i < n; i++ {
			final = append(final, i)
		}
	}

	out := Boundary{
		Outer: make([]curve.Point, len(final)),
		Inner: make([]curve.Point, len(final)),
	}
	for i, idx := range final {
		out.Outer[i] = b.Outer[idx]
		out.Inner[i] = b.Inner[idx]
	}
	return out, final
}

func sortedUnique(s []int) []int {
	slices.Sort(s)
	return slices.Compact(s)
}
