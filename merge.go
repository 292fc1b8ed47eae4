// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

// rotate performs an in-place rotation of data so that data[mid] becomes the
// new first element: the block [0,mid) and [mid,len(data)) trade places, with
// their own internal order preserved. It uses the classic three-reversal
// trick (reverse each half, then reverse the whole) so it needs no auxiliary
// storage. Returns the new index of what used to be data[0].
func rotate[T any](data []T, mid int) int {
	reverseSlice(data[:mid])
	reverseSlice(data[mid:])
	reverseSlice(data)
	return len(data) - mid
}

func reverseSlice[T any](data []T) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}

// MergeInPlace implements spec component B: given data[:mid] and data[mid:]
// both sorted under less, it rearranges data in place to be sorted under
// less using only rotations — no auxiliary allocation. Equivalent elements
// from the left half precede equivalent elements from the right half
// (stable). stats may be nil; when non-nil, each rotation's block length is
// added to Stats.Moves (a rotation touches every element of the block it
// rotates, via its three reversals).
func MergeInPlace[T any](data []T, mid int, less LessFunc[T], stats *Stats) {
	mergeInPlaceRange(data, 0, mid, len(data), less, stats)
}

// mergeInPlaceRange merges data[f:m] with data[m:l] in place. f, m, l are
// absolute indices into data.
func mergeInPlaceRange[T any](data []T, f, m, l int, less LessFunc[T], stats *Stats) {
	for {
		if f == m || m == l {
			return
		}
		// Already in order: nothing to merge.
		if !less(data[m], data[m-1]) {
			return
		}
		// Cut the longer side in half and the other side at the matching
		// bound, so that [m1,m) belongs after [m,m2) and [f,m1) before it.
		var m1, m2 int
		if m-f > l-m {
			m1 = f + (m-f)/2
			m2 = lowerBound(data, m, l, data[m1], less)
		} else {
			m2 = m + (l-m+1)/2
			m1 = upperBound(data, f, m, data[m2-1], less)
		}

		newMid := m1 + rotate(data[m1:m2], m-m1)
		if stats != nil {
			stats.Moves += uint64(m2 - m1)
		}

		// Recurse on the two shrunken sub-merges: [f,m1) against [m1,newMid)
		// and [newMid,m2) against [m2,l). Each call strictly reduces one
		// side, so the recursion terminates.
		mergeInPlaceRange(data, f, m1, newMid, less, stats)
		f, m, l = newMid, m2, l
	}
}
