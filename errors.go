// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatset

import (
	"errors"
	"fmt"
)

// ErrUnordered indicates a bulk-insert strategy detected, while sorting or
// merging, that the supplied LessFunc is not consistent with the set's
// existing order — e.g. the set was not actually sorted on entry, or the
// comparator is not a strict weak order. Spec §7 classifies this as a
// programmer error the library is not required to detect ("behavior is
// undefined if it occurs"); where a strategy's own sort step happens to
// notice the inconsistency cheaply, it reports ErrUnordered rather than
// silently continuing. Detection is best-effort, never guaranteed.
var ErrUnordered = errors.New("flatset: comparator or input is not consistently ordered")

// InsertError wraps a failure from a bulk-insert strategy with the
// strategy's name for context, mirroring the teacher repo's PDFError.
type InsertError struct {
	Strategy string
	Err      error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("flatset: %s: %v", e.Strategy, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

func wrapInsertError(strategy string, err error) error {
	if err == nil {
		return nil
	}
	return &InsertError{Strategy: strategy, Err: err}
}

// checkSorted scans data for a consecutive inversion under less and reports
// ErrUnordered if one is found. It is the "opportunistic, cheap to detect"
// check mentioned in DESIGN.md Decision D-7: D2-D8 each run it once over the
// region they just sorted (the whole set for D2, the staged batch for D3-D8),
// which can catch a comparator that isn't actually a strict weak order at
// negligible extra cost. D1 sorts nothing and runs it over the whole set
// after inserting, which also catches a set that wasn't sorted on entry
// (violating I1); D2-D8 do not look at the existing prefix on its own.
func checkSorted[T any](data []T, less LessFunc[T]) error {
	for i := 1; i < len(data); i++ {
		if less(data[i], data[i-1]) {
			return ErrUnordered
		}
	}
	return nil
}
