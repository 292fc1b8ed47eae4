// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestUnionBasic(t *testing.T) {
	tests := []struct {
		a, b, want []int
	}{
		{nil, nil, []int{}},
		{[]int{1, 2, 3}, nil, []int{1, 2, 3}},
		{nil, []int{1, 2, 3}, []int{1, 2, 3}},
		{[]int{1, 3, 5}, []int{2, 4, 6}, []int{1, 2, 3, 4, 5, 6}},
		{[]int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3}},
		{[]int{1, 2, 3}, []int{2, 3, 4}, []int{1, 2, 3, 4}},
		{[]int{5, 10, 15}, []int{1, 10, 20}, []int{1, 5, 10, 15, 20}},
	}
	for _, tc := range tests {
		got := Union(tc.a, tc.b, intLess)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Union(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestUnionKeepsAsRepresentativeOnTie(t *testing.T) {
	type tagged struct {
		key  int
		from string
	}
	less := func(x, y tagged) bool { return x.key < y.key }
	a := []tagged{{1, "a"}, {2, "a"}}
	b := []tagged{{2, "b"}, {3, "b"}}
	got := UnionAppend(nil, a, b, less, nil)
	want := []tagged{{1, "a"}, {2, "a"}, {3, "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnionAppend = %+v, want %+v", got, want)
	}
}

func TestUnionRandomizedAgainstMapModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		a := randomSortedInts(rng, rng.Intn(25))
		b := randomSortedInts(rng, rng.Intn(25))
		a = dedupIntsFirst(a)
		b = dedupIntsFirst(b)
		got := Union(a, b, intLess)
		want := modelUnion(a, b)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: a=%v b=%v got=%v want=%v", trial, a, b, got, want)
		}
	}
}

func dedupIntsFirst(data []int) []int {
	if len(data) == 0 {
		return data
	}
	w := 1
	for r := 1; r < len(data); r++ {
		if data[r] != data[w-1] {
			data[w] = data[r]
			w++
		}
	}
	return data[:w]
}

func modelUnion(a, b []int) []int {
	set := map[int]bool{}
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		set[v] = true
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	// insertion-sort is fine for test-sized inputs and avoids importing sort
	// twice with the same intent as the thing under test.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func TestUnionIntoTail(t *testing.T) {
	// existing set [10,20,30], batch (deduped, sorted) [25] placed at the
	// tail with one slot of slack before it.
	buf := []int{10, 20, 30, 0, 25}
	n, tail, batchLen := 3, 4, 1
	result := UnionIntoTail(buf, n, tail, batchLen, intLess, nil)
	want := []int{10, 20, 25, 30}
	if result != len(want) || !reflect.DeepEqual(buf[:result], want) {
		t.Fatalf("UnionIntoTail = %v (result=%d), want %v", buf[:result], result, want)
	}
}

func TestUnionIntoTailDuplicateAgainstExisting(t *testing.T) {
	// batch element 20 already exists; existing wins, result shorter than
	// n+batchLen.
	buf := []int{10, 20, 30, 0, 20}
	result := UnionIntoTail(buf, 3, 4, 1, intLess, nil)
	want := []int{10, 20, 30}
	if result != len(want) || !reflect.DeepEqual(buf[:result], want) {
		t.Fatalf("UnionIntoTail = %v (result=%d), want %v", buf[:result], result, want)
	}
}

func TestUnionIntoTailRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 300; trial++ {
		a := dedupIntsFirst(randomSortedInts(rng, rng.Intn(20)))
		batch := dedupIntsFirst(randomSortedInts(rng, rng.Intn(20)))
		n, k := len(a), len(batch)
		slack := k + rng.Intn(4)
		buf := make([]int, n+slack+k)
		copy(buf, a)
		copy(buf[n+slack:], batch)
		result := UnionIntoTail(buf, n, n+slack, k, intLess, nil)
		want := modelUnion(a, batch)
		if result != len(want) || !reflect.DeepEqual(buf[:result], want) {
			t.Fatalf("trial %d: a=%v batch=%v slack=%d got=%v want=%v", trial, a, batch, slack, buf[:result], want)
		}
	}
}

func TestUnionAppendTracksStats(t *testing.T) {
	var stats Stats
	got := UnionAppend(nil, []int{1, 3, 5}, []int{2, 4}, intLess, &stats)
	if want := []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("UnionAppend = %v, want %v", got, want)
	}
	if stats.BulkCopies == 0 {
		t.Error("BulkCopies not incremented")
	}
	if stats.Moves != uint64(len(got)) {
		t.Errorf("Moves = %d, want %d", stats.Moves, len(got))
	}
}

func TestUnionIntoTailTracksStats(t *testing.T) {
	var stats Stats
	// The batch element 20 duplicates an existing one, so the result is
	// shorter than n+batchLen and must be compacted down to index 0.
	buf := []int{10, 20, 30, 0, 20}
	result := UnionIntoTail(buf, 3, 4, 1, intLess, &stats)
	if want := []int{10, 20, 30}; result != len(want) || !reflect.DeepEqual(buf[:result], want) {
		t.Fatalf("UnionIntoTail = %v, want %v", buf[:result], want)
	}
	if stats.Moves == 0 {
		t.Error("Moves not incremented")
	}
	if stats.BulkCopies == 0 {
		t.Error("BulkCopies not incremented for the final compaction copy")
	}
}
