// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestRotate(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}
	newFirst := rotate(data, 2)
	want := []int{3, 4, 5, 1, 2}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("rotate(data, 2) = %v, want %v", data, want)
	}
	if data[newFirst] != 1 {
		t.Errorf("rotate returned index %d (value %d), want value 1", newFirst, data[newFirst])
	}
}

func TestRotateEdgeCases(t *testing.T) {
	data := []int{1, 2, 3}
	rotate(data, 0)
	if !reflect.DeepEqual(data, []int{1, 2, 3}) {
		t.Errorf("rotate by 0 mutated data: %v", data)
	}
	rotate(data, len(data))
	if !reflect.DeepEqual(data, []int{1, 2, 3}) {
		t.Errorf("rotate by len(data) mutated data: %v", data)
	}
}

func TestMergeInPlace(t *testing.T) {
	tests := []struct {
		left, right []int
	}{
		{nil, nil},
		{[]int{1, 2, 3}, nil},
		{nil, []int{1, 2, 3}},
		{[]int{1, 3, 5}, []int{2, 4, 6}},
		{[]int{1, 2, 3}, []int{4, 5, 6}},
		{[]int{4, 5, 6}, []int{1, 2, 3}[:0]},
		{[]int{1, 1, 2, 2}, []int{1, 2, 3}},
		{[]int{5}, []int{1, 2, 3, 4}},
	}
	for _, tc := range tests {
		data := append(append([]int{}, tc.left...), tc.right...)
		want := append(append([]int{}, tc.left...), tc.right...)
		sort.Ints(want)
		MergeInPlace(data, len(tc.left), intLess, nil)
		if !reflect.DeepEqual(data, want) {
			t.Errorf("MergeInPlace(%v | %v) = %v, want %v", tc.left, tc.right, data, want)
		}
	}
}

func TestMergeInPlaceRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		n1 := rng.Intn(30)
		n2 := rng.Intn(30)
		left := randomSortedInts(rng, n1)
		right := randomSortedInts(rng, n2)
		data := append(append([]int{}, left...), right...)
		want := append(append([]int{}, left...), right...)
		sort.Ints(want)
		MergeInPlace(data, n1, intLess, nil)
		if !reflect.DeepEqual(data, want) {
			t.Fatalf("trial %d: left=%v right=%v got=%v want=%v", trial, left, right, data, want)
		}
	}
}

func TestMergeInPlaceTracksStats(t *testing.T) {
	var stats Stats
	data := []int{1, 3, 5, 2, 4, 6}
	MergeInPlace(data, 3, intLess, &stats)
	if want := []int{1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(data, want) {
		t.Fatalf("MergeInPlace = %v, want %v", data, want)
	}
	if stats.Moves == 0 {
		t.Error("Moves not incremented")
	}
}

func randomSortedInts(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	v := 0
	for i := range out {
		v += rng.Intn(4)
		out[i] = v
	}
	return out
}
