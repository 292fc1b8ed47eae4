// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

import "sort"

// Config carries the tunable thresholds used by strategy selection,
// constructed with defaults the same way the teacher repo's
// NewAdaptiveSorter/NewOptimizedSorter do (adaptive_sort.go,
// optimized_sorting.go).
type Config struct {
	// SlackFactor is how many copies of the batch D8 (use-end-buffer) grows
	// the backing array by, beyond the existing set: capacity becomes
	// len(set) + SlackFactor*len(batch). Spec §4.D8 uses two copies.
	SlackFactor int
	// SmallBatchThreshold lets the default Insert still prefer D8 for small
	// batches even when the set has no existing slack: the extra
	// reallocation D8 forces is cheap to recoup at small k, and on amd64
	// with AVX2/AVX512 (detected in bulkcopy_amd64.go) the runtime's
	// vectorized memmove makes D8's copies cheaper still, so the threshold
	// is platform-dependent.
	SmallBatchThreshold int
}

// DefaultConfig returns the default strategy-selection tunables, with
// SmallBatchThreshold taken from platformSmallBatchThreshold (amd64:
// CPU-feature-gated via bulkcopy_amd64.go; other platforms: the fixed
// fallback in bulkcopy_other.go).
func DefaultConfig() Config {
	return Config{SlackFactor: 2, SmallBatchThreshold: platformSmallBatchThreshold()}
}

// Strategy names one of the eight bulk-insert strategies from spec §4.D, so
// a benchmark harness can force a specific variant rather than go through
// the default selection in Insert.
type Strategy int

const (
	StrategyOneAtATime Strategy = iota
	StrategyStableSortUnique
	StrategyFullInplaceMerge
	StrategyCopyUniqueFullInplaceMerge
	StrategyCopyUniqueCacheBegin
	StrategyCopyUniqueUpperBound
	StrategyCopyUniqueNoBuffer
	StrategyUseEndBuffer
)

// strategyNames backs Strategy.String() and the Strategies lookup table.
var strategyNames = map[Strategy]string{
	StrategyOneAtATime:                 "one-at-a-time",
	StrategyStableSortUnique:           "stable-sort-and-unique",
	StrategyFullInplaceMerge:           "full-inplace-merge",
	StrategyCopyUniqueFullInplaceMerge: "copy-unique-then-full-inplace-merge",
	StrategyCopyUniqueCacheBegin:       "copy-unique-inplace-merge-cache-begin",
	StrategyCopyUniqueUpperBound:       "copy-unique-inplace-merge-upper-bound",
	StrategyCopyUniqueNoBuffer:         "copy-unique-inplace-merge-no-buffer",
	StrategyUseEndBuffer:               "use-end-buffer",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Strategies lists every named strategy in a stable order, for harnesses
// that want to iterate "all eight" (e.g. the equivalence-across-strategies
// property in spec §8.5).
var Strategies = []Strategy{
	StrategyOneAtATime,
	StrategyStableSortUnique,
	StrategyFullInplaceMerge,
	StrategyCopyUniqueFullInplaceMerge,
	StrategyCopyUniqueCacheBegin,
	StrategyCopyUniqueUpperBound,
	StrategyCopyUniqueNoBuffer,
	StrategyUseEndBuffer,
}

// InsertWith runs the named strategy. See insert.go's D1..D8 methods for the
// per-strategy contract; all of them guarantee the same post-condition
// (spec §4.D preamble): the set contains the union, under less-equivalence,
// of its prior contents and batch, still satisfying I1 and I2. The error is
// non-nil only when a strategy's own sort step opportunistically detects
// that less isn't a consistent order (DESIGN.md Decision D-7); a nil error
// does not by itself prove less was consistent.
func (s *FlatSet[T]) InsertWith(strategy Strategy, batch []T) error {
	switch strategy {
	case StrategyOneAtATime:
		return s.InsertOneAtATime(batch)
	case StrategyStableSortUnique:
		return s.InsertStableSortUnique(batch)
	case StrategyFullInplaceMerge:
		return s.InsertFullInplaceMerge(batch)
	case StrategyCopyUniqueFullInplaceMerge:
		return s.InsertCopyUniqueFullInplaceMerge(batch)
	case StrategyCopyUniqueCacheBegin:
		return s.InsertCopyUniqueCacheBegin(batch)
	case StrategyCopyUniqueUpperBound:
		return s.InsertCopyUniqueUpperBound(batch)
	case StrategyCopyUniqueNoBuffer:
		return s.InsertCopyUniqueNoBuffer(batch)
	case StrategyUseEndBuffer:
		return s.InsertUseEndBuffer(batch)
	default:
		panic("flatset: unknown strategy")
	}
}

// Insert is the default bulk-insert entry point (spec §9 "Strategy
// selection"): it picks D8 (use-end-buffer) when the batch already fits in
// the set's available slack without a fresh allocation or when the batch
// has at most DefaultConfig().SmallBatchThreshold elements, and D5
// (copy-unique-inplace-merge-cache-begin) otherwise, matching the
// "proposed_solution" benchmark label in the original source.
func (s *FlatSet[T]) Insert(batch []T) error {
	return s.InsertConfigured(DefaultConfig(), batch)
}

// InsertConfigured is Insert with an explicit Config, for callers that want
// to tune the slack factor.
func (s *FlatSet[T]) InsertConfigured(cfg Config, batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	haveSlack := cap(s.data)-len(s.data) >= cfg.SlackFactor*len(batch)
	if haveSlack || len(batch) <= cfg.SmallBatchThreshold {
		return s.insertUseEndBuffer(cfg, batch)
	}
	return s.InsertCopyUniqueCacheBegin(batch)
}

// dedupSlice collapses consecutive equivalent elements in a sorted slice,
// keeping the first of each run, and returns the new length. It never
// allocates.
func dedupSlice[T any](data []T, less LessFunc[T]) int {
	if len(data) < 2 {
		return len(data)
	}
	w := 1
	for r := 1; r < len(data); r++ {
		if less(data[w-1], data[r]) {
			data[w] = data[r]
			w++
		}
	}
	return w
}

// mergeBuffered merges data[:mid] and data[mid:] (both sorted, and known to
// share no equivalent elements across the split — the copy-unique
// strategies guarantee that before calling it) using a single auxiliary
// buffer sized to the left half, rather than the allocation-free rotations
// of MergeInPlace (component B). This is the "merge in place" step D4-D6
// use by default; D7 is the same shape with MergeInPlace substituted,
// trading the allocation for rotation cost when memory pressure matters
// more than CPU (spec §4.D7). The buffer comes from s.scratchOfLen so
// repeated inserts on the same set reuse one allocation. Every element
// written into data counts toward s.stats.Moves.
func (s *FlatSet[T]) mergeBuffered(data []T, mid int, less LessFunc[T]) {
	if mid <= 0 || mid >= len(data) {
		return
	}
	left := s.scratchOfLen(mid)
	copy(left, data[:mid])
	li, ri, oi := 0, mid, 0
	for li < len(left) && ri < len(data) {
		if less(data[ri], left[li]) {
			data[oi] = data[ri]
			ri++
		} else {
			data[oi] = left[li]
			li++
		}
		oi++
	}
	for li < len(left) {
		data[oi] = left[li]
		li++
		oi++
	}
	s.stats.Moves += uint64(oi)
}

// InsertOneAtATime is D1: for each batch element, biased-search the current
// set and insert at the found position unless an equivalent element
// already occupies it. O(k*(log n + n)) element moves; good for very small
// batches. Uses the corrected condition from spec §9 Open Question 1 (the
// original source dereferences a past-the-end position when found == end).
func (s *FlatSet[T]) InsertOneAtATime(batch []T) error {
	less := countingLess(&s.stats, s.less)
	for _, x := range batch {
		n := len(s.data)
		found := LowerBoundBiased(s.data, 0, n, x, less)
		if found != n && !less(x, s.data[found]) {
			continue
		}
		s.InsertAt(found, x)
	}
	if err := checkSorted(s.data, s.less); err != nil {
		return wrapInsertError(StrategyOneAtATime.String(), err)
	}
	return nil
}

// InsertStableSortUnique is D2: append the whole batch, stable-sort the
// whole set, then erase consecutive duplicates keeping the first (old-wins,
// since existing elements precede the batch before the sort and stability
// preserves that relative order for ties). O((n+k) log(n+k)), no allocation
// beyond the append.
func (s *FlatSet[T]) InsertStableSortUnique(batch []T) error {
	s.AppendRange(batch...)
	less := countingLess(&s.stats, s.less)
	sort.SliceStable(s.data, func(i, j int) bool { return less(s.data[i], s.data[j]) })
	if err := checkSorted(s.data, s.less); err != nil {
		return wrapInsertError(StrategyStableSortUnique.String(), err)
	}
	w := dedupSlice(s.data, less)
	s.stats.Moves += uint64(len(s.data) - w)
	s.data = s.data[:w]
	return nil
}

// InsertFullInplaceMerge is D3: append the batch at the tail, sort only the
// appended suffix, merge the two sorted halves in place with MergeInPlace
// (component B, no auxiliary allocation), then erase consecutive
// duplicates.
func (s *FlatSet[T]) InsertFullInplaceMerge(batch []T) error {
	n := len(s.data)
	s.AppendRange(batch...)
	less := countingLess(&s.stats, s.less)
	suffix := s.data[n:]
	sort.SliceStable(suffix, func(i, j int) bool { return less(suffix[i], suffix[j]) })
	if err := checkSorted(suffix, s.less); err != nil {
		return wrapInsertError(StrategyFullInplaceMerge.String(), err)
	}
	MergeInPlace(s.data, n, less, &s.stats)
	w := dedupSlice(s.data, less)
	s.stats.Moves += uint64(len(s.data) - w)
	s.data = s.data[:w]
	return nil
}

// copyUniqueSuffix appends only the batch elements not already present
// (under less-equivalence) in the existing prefix s.data[:n], using a
// biased lookup per element. Shared by D4-D7.
func (s *FlatSet[T]) copyUniqueSuffix(n int, batch []T, less LessFunc[T]) {
	for _, x := range batch {
		lb := LowerBoundBiased(s.data, 0, n, x, less)
		if lb < n && !less(x, s.data[lb]) {
			continue
		}
		s.AppendRange(x)
	}
}

// InsertCopyUniqueFullInplaceMerge is D4: copy only the batch elements not
// already present in the prefix, sort and dedupe the copied suffix, then
// merge (buffered) across the whole set. Halves work when the batch has
// high overlap with the set.
func (s *FlatSet[T]) InsertCopyUniqueFullInplaceMerge(batch []T) error {
	n := len(s.data)
	less := countingLess(&s.stats, s.less)
	s.copyUniqueSuffix(n, batch, less)
	suffix := s.data[n:]
	sort.SliceStable(suffix, func(i, j int) bool { return less(suffix[i], suffix[j]) })
	if err := checkSorted(suffix, s.less); err != nil {
		return wrapInsertError(StrategyCopyUniqueFullInplaceMerge.String(), err)
	}
	m := dedupSlice(suffix, less)
	s.data = s.data[:n+m]
	s.mergeBuffered(s.data, n, less)
	return nil
}

// InsertCopyUniqueCacheBegin is D5: as D4, but remembers the smallest
// position in the existing prefix where any new element would be inserted,
// so the final merge only runs from that position to the end, skipping a
// prefix known to be entirely less than every new element.
func (s *FlatSet[T]) InsertCopyUniqueCacheBegin(batch []T) error {
	n := len(s.data)
	less := countingLess(&s.stats, s.less)
	begin := n
	for _, x := range batch {
		lb := LowerBoundBiased(s.data, 0, n, x, less)
		if lb < n && !less(x, s.data[lb]) {
			continue
		}
		if lb < begin {
			begin = lb
		}
		s.AppendRange(x)
	}
	suffix := s.data[n:]
	sort.SliceStable(suffix, func(i, j int) bool { return less(suffix[i], suffix[j]) })
	if err := checkSorted(suffix, s.less); err != nil {
		return wrapInsertError(StrategyCopyUniqueCacheBegin.String(), err)
	}
	m := dedupSlice(suffix, less)
	s.data = s.data[:n+m]
	s.mergeBuffered(s.data[begin:], n-begin, less)
	return nil
}

// InsertCopyUniqueUpperBound is D6: as D4, but before merging, advances the
// merge's left edge by one upper_bound against the first new (smallest)
// batch element — the prefix strictly less than that element cannot
// participate in the merge.
func (s *FlatSet[T]) InsertCopyUniqueUpperBound(batch []T) error {
	n := len(s.data)
	less := countingLess(&s.stats, s.less)
	s.copyUniqueSuffix(n, batch, less)
	suffix := s.data[n:]
	sort.SliceStable(suffix, func(i, j int) bool { return less(suffix[i], suffix[j]) })
	if err := checkSorted(suffix, s.less); err != nil {
		return wrapInsertError(StrategyCopyUniqueUpperBound.String(), err)
	}
	m := dedupSlice(suffix, less)
	s.data = s.data[:n+m]
	begin := n
	if m > 0 {
		begin = UpperBoundBiased(s.data, 0, n, s.data[n], less)
	}
	s.mergeBuffered(s.data[begin:], n-begin, less)
	return nil
}

// InsertCopyUniqueNoBuffer is D7: as D6, but uses MergeInPlace (component B,
// no auxiliary allocation) for the final merge — chosen when memory
// pressure outweighs CPU.
func (s *FlatSet[T]) InsertCopyUniqueNoBuffer(batch []T) error {
	n := len(s.data)
	less := countingLess(&s.stats, s.less)
	s.copyUniqueSuffix(n, batch, less)
	suffix := s.data[n:]
	sort.SliceStable(suffix, func(i, j int) bool { return less(suffix[i], suffix[j]) })
	if err := checkSorted(suffix, s.less); err != nil {
		return wrapInsertError(StrategyCopyUniqueNoBuffer.String(), err)
	}
	m := dedupSlice(suffix, less)
	s.data = s.data[:n+m]
	begin := n
	if m > 0 {
		begin = UpperBoundBiased(s.data, 0, n, s.data[n], less)
	}
	MergeInPlace(s.data[begin:], n-begin, less, &s.stats)
	return nil
}

// InsertUseEndBuffer is D8: grow the backing storage to hold the existing
// set plus two copies of the batch, write the batch into the high end, sort
// and dedupe it there, then run the union-into-tail variant of component C
// using the slack between the existing end and the batch as the output
// buffer, finally trimming the unused slack. Measured as the fastest
// strategy: every element moves at most once and comparisons follow a
// galloping pattern that exploits skewed batches.
func (s *FlatSet[T]) InsertUseEndBuffer(batch []T) error {
	return s.insertUseEndBuffer(DefaultConfig(), batch)
}

func (s *FlatSet[T]) insertUseEndBuffer(cfg Config, batch []T) error {
	n := len(s.data)
	k := len(batch)
	if k == 0 {
		return nil
	}
	less := countingLess(&s.stats, s.less)
	s.Reserve(n + cfg.SlackFactor*k)
	data := s.data[:n+cfg.SlackFactor*k]

	copy(data[n+k:], batch)
	s.stats.Moves += uint64(k)

	batchTail := data[n+k : n+cfg.SlackFactor*k]
	sort.SliceStable(batchTail, func(i, j int) bool { return less(batchTail[i], batchTail[j]) })
	if err := checkSorted(batchTail, s.less); err != nil {
		return wrapInsertError(StrategyUseEndBuffer.String(), err)
	}
	m := dedupSlice(batchTail, less)

	result := UnionIntoTail(data, n, n+k, m, less, &s.stats)
	s.data = data[:result]
	return nil
}
