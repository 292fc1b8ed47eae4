// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

// bumpBulkCopy records a contiguous-run copy of n elements against stats, if
// stats is non-nil. n==0 means no copy actually happened (an empty run) and
// is not counted.
func bumpBulkCopy(stats *Stats, n int) {
	if stats == nil || n == 0 {
		return
	}
	stats.BulkCopies++
	stats.Moves += uint64(n)
}

// UnionAppend implements spec component C (Adaptive Set-Union): given two
// sorted, duplicate-free ranges a and b, it appends their deduplicated union
// to dst in sorted order under less and returns the extended slice. Where a
// and b contain equivalent elements, the element from a is kept. stats may be
// nil; when non-nil, every bulk-copied run bumps Stats.BulkCopies and adds
// the run's length to Stats.Moves.
//
// Each "advance" step gallops via BiasedPartitionPoint so a run of elements
// from one side that all sit below the other side's current head costs
// O(log run-length) comparisons plus one bulk copy, rather than one
// comparison per element.
func UnionAppend[T any](dst, a, b []T, less LessFunc[T], stats *Stats) []T {
	i, j := 0, 0
	na, nb := len(a), len(b)
	for j < nb {
		// Advance i past the run of a-elements strictly less than b[j],
		// bulk-copying the skipped run — none of it can have an equivalent
		// in b (everything in that run precedes b[j]).
		ni := BiasedPartitionPoint(i, na, func(k int) bool { return less(a[k], b[j]) })
		if ni > i {
			dst = append(dst, a[i:ni]...)
			bumpBulkCopy(stats, ni-i)
			i = ni
		}
		if i >= na {
			break
		}
		// Advance j past the run of b-elements strictly less than a[i].
		nj := BiasedPartitionPoint(j, nb, func(k int) bool { return less(b[k], a[i]) })
		if nj > j {
			dst = append(dst, b[j:nj]...)
			bumpBulkCopy(stats, nj-j)
			j = nj
		}
		if j >= nb {
			break
		}
		// b[j] is now known not to be less than a[i] (the advance above
		// stopped there). If a[i] is also not less than b[j], the two are
		// equivalent: keep a's representative, drop b's by skipping past
		// it. Otherwise a[i] < b[j] and the loop goes around again so the
		// next i-advance can bulk-copy a[i] before b[j] is reconsidered.
		if !less(a[i], b[j]) {
			j++
		}
	}
	dst = append(dst, a[i:]...)
	bumpBulkCopy(stats, na-i)
	dst = append(dst, b[j:]...)
	bumpBulkCopy(stats, nb-j)
	return dst
}

// Union is a convenience wrapper that allocates a fresh slice for the result
// and does not track stats.
func Union[T any](a, b []T, less LessFunc[T]) []T {
	return UnionAppend(make([]T, 0, len(a)+len(b)), a, b, less, nil)
}

// UnionIntoTail implements the "union-into-tail" variant of spec component C,
// used by the D8 (use-end-buffer) strategy. buf[:n] is the existing sorted,
// duplicate-free set; buf[tail:tail+batchLen] is a sorted, duplicate-free
// batch stored at the high end of buf (tail >= n+batchLen, so at least
// batchLen free slots lie between the two inputs). The union is written into
// buf starting at index 0; UnionIntoTail returns its length. stats may be
// nil; when non-nil, every element written during the reverse merge (and the
// final compaction copy) is added to Stats.Moves, and the compaction copy
// (the only contiguous-run copy this variant performs — the reverse merge
// itself writes one element at a time, not runs) bumps Stats.BulkCopies.
//
// The merge walks both inputs from their high ends toward low, writing the
// result from the top of the output region (index n+batchLen-1) downward.
// Because each output slot is only ever written after the corresponding
// input slot(s) have been read, and the output region [0,n+batchLen) never
// reaches as far as the batch's storage at [tail,tail+batchLen) (since
// tail >= n+batchLen), the batch is never overwritten before it is read; the
// overlap that does happen (the output region over-writes buf[:n], the
// existing set's own storage) is safe because the write cursor never
// passes the unread portion of buf[:n] — each loop iteration writes at most
// one output element but is preceded by reading at least one element at an
// index >= the index it writes.
func UnionIntoTail[T any](buf []T, n, tail, batchLen int, less LessFunc[T], stats *Stats) int {
	hi := n + batchLen
	i := n - 1
	j := tail + batchLen - 1
	out := hi - 1
	moves := 0

	for i >= 0 && j >= tail {
		switch {
		case less(buf[j], buf[i]):
			// a's element is the larger one; it takes this output slot.
			buf[out] = buf[i]
			i--
		case less(buf[i], buf[j]):
			buf[out] = buf[j]
			j--
		default:
			// Equivalent: a's element wins, b's is dropped.
			buf[out] = buf[i]
			i--
			j--
		}
		out--
		moves++
	}
	for ; i >= 0; i, out = i-1, out-1 {
		buf[out] = buf[i]
		moves++
	}
	for ; j >= tail; j, out = j-1, out-1 {
		buf[out] = buf[j]
		moves++
	}

	result := hi - 1 - out
	if shift := out + 1; shift > 0 {
		copy(buf[:result], buf[shift:shift+result])
		moves += result
		if stats != nil && result > 0 {
			stats.BulkCopies++
		}
	}
	if stats != nil {
		stats.Moves += uint64(moves)
	}
	return result
}
