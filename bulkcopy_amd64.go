// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64

package flatset

import "golang.org/x/sys/cpu"

// platformSmallBatchThreshold mirrors the teacher repo's hasAVX2-gated
// dispatch in simsys_amd64.go/simd_amd64.go: a CPU with wide SIMD registers
// makes D8's bulk copies in insert.go and union.go (plain slice copy, which
// the Go runtime lowers to a vectorized memmove on amd64) cheap
// relative to a scalar one-at-a-time insert loop, so the default strategy
// selection in insert.go can afford to pick a union-heavy strategy (D8) at
// smaller batch sizes on such hardware.
func platformSmallBatchThreshold() int {
	if cpu.X86.HasAVX512F || cpu.X86.HasAVX2 {
		return 16
	}
	return 32
}
