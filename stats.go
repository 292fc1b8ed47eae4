// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

// Stats accumulates the counters a benchmark or comparison harness needs to
// judge the cost of a bulk insert (spec §1: "external collaborators... only
// need the public operations of §4 plus stable counters suitable for
// comparison"). A FlatSet's core algorithms are synchronous and
// single-threaded (spec §5), so these are plain counters, not atomics —
// unlike ShardedCache's atomic hit/miss/eviction counters in the teacher
// repo, there is no concurrent writer to race against.
type Stats struct {
	// Comparisons counts calls the bulk-insert strategies make to the set's
	// LessFunc while searching, sorting and merging; checkSorted's calls
	// and those of LowerBound/UpperBound/Contains are not counted.
	Comparisons uint64
	// Moves counts element writes performed while shifting or copying data
	// within the backing array: AppendRange, InsertAt, EraseRange,
	// dedup-shrinkage, MergeInPlace's rotations, mergeBuffered's merge
	// loop, UnionAppend's bulk-copied runs, and every write UnionIntoTail
	// makes.
	Moves uint64
	// BulkCopies counts the number of contiguous-run copies performed by
	// the adaptive set-union's galloping "advance" steps (UnionAppend) and
	// UnionIntoTail's final compaction copy — the skew metric: a low
	// BulkCopies relative to Moves means long runs were being skipped
	// efficiently rather than moved one element at a time.
	BulkCopies uint64
	// Allocations counts backing-array growths (Reserve/AppendRange/InsertAt
	// triggering a new make()) and growths of the merge scratch buffer
	// (scratchOfLen).
	Allocations uint64
}

// countingLess wraps a LessFunc so every call increments a Stats.Comparisons
// counter, letting the bulk-insert strategies report comparison counts
// without threading a counter argument through every helper in partition.go,
// merge.go and union.go.
func countingLess[T any](stats *Stats, less LessFunc[T]) LessFunc[T] {
	return func(a, b T) bool {
		stats.Comparisons++
		return less(a, b)
	}
}
