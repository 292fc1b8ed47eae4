// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

// LessFunc reports whether a strictly precedes b. It must induce a strict
// weak order: irreflexive, transitive, and with "neither a<b nor b<a"
// itself transitive (which is what makes it an equivalence relation on top
// of the order). LessFunc is called an unbounded number of times per
// operation and must be pure.
type LessFunc[T any] func(a, b T) bool

// partitionPoint is the plain binary-search primitive every other search in
// this package is built from. pred must be false for a prefix of [lo,hi) and
// true for the remaining suffix (the same shape sort.Search assumes);
// partitionPoint returns the boundary, i.e. the smallest index in [lo,hi]
// where pred holds.
func partitionPoint(lo, hi int, pred func(int) bool) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if pred(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// BiasedPartitionPoint implements the one-sided (galloping) partition search
// of spec component A: given a sorted range [lo,hi) and a monotone predicate
// p true on a (possibly empty) prefix, it returns the first position where p
// is false. When the answer is k away from lo the predicate is evaluated
// O(log k) times; the worst case never exceeds vanilla binary search by more
// than a small constant.
func BiasedPartitionPoint(lo, hi int, p func(int) bool) int {
	return biasedGallop(lo, hi, func(i int) bool { return !p(i) })
}

// biasedGallop finds the smallest index in [lo,hi] where truth holds, given
// truth is false on a prefix of [lo,hi) and true on the remaining suffix. It
// probes lo+1, lo+2, lo+4, lo+8, ... doubling the step each time a probe is
// still false, then finishes with a bounded partitionPoint over the window
// the doubling just skipped.
func biasedGallop(lo, hi int, truth func(int) bool) int {
	if lo >= hi || truth(lo) {
		return lo
	}
	prev := lo
	step := 1
	for {
		probe := lo + step
		if probe >= hi {
			return partitionPoint(prev+1, hi, truth)
		}
		if truth(probe) {
			return partitionPoint(prev+1, probe, truth)
		}
		prev = probe
		step *= 2
	}
}

// biasedGallopFromEnd mirrors biasedGallop for a predicate that is true on a
// (possibly empty) suffix ending at hi-1 and false before it. It returns the
// first index (ascending) where pred becomes true — the start of that
// suffix — galloping inward from the hi end. UnionIntoTail does not use it
// (its reverse walk is a plain element-at-a-time merge).
func biasedGallopFromEnd(lo, hi int, pred func(int) bool) int {
	if lo >= hi {
		return hi
	}
	n := hi - lo
	k := biasedGallop(0, n, func(k int) bool { return !pred(hi - 1 - k) })
	return hi - k
}

// lowerBound is the plain (non-galloping) lower-bound binary search: the
// first index in [lo,hi) whose value is not less than v. Used by component B,
// whose O(n log n) bound assumes a vanilla binary search, not a galloping one.
func lowerBound[T any](data []T, lo, hi int, v T, less LessFunc[T]) int {
	return partitionPoint(lo, hi, func(i int) bool { return !less(data[i], v) })
}

// upperBound is the plain upper-bound binary search: the first index in
// [lo,hi) whose value compares strictly greater than v.
func upperBound[T any](data []T, lo, hi int, v T, less LessFunc[T]) int {
	return partitionPoint(lo, hi, func(i int) bool { return less(v, data[i]) })
}

// LowerBoundBiased is the derived operation from spec component A: the first
// position in [lo,hi) whose value is not less than v, found by applying the
// biased partition search to the predicate x -> less(x, v).
func LowerBoundBiased[T any](data []T, lo, hi int, v T, less LessFunc[T]) int {
	return BiasedPartitionPoint(lo, hi, func(i int) bool { return less(data[i], v) })
}

// UpperBoundBiased is the biased analogue of upperBound: the first position
// in [lo,hi) whose value compares strictly greater than v.
func UpperBoundBiased[T any](data []T, lo, hi int, v T, less LessFunc[T]) int {
	return BiasedPartitionPoint(lo, hi, func(i int) bool { return !less(v, data[i]) })
}
