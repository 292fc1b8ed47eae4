// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64

package flatset

// platformSmallBatchThreshold is the non-amd64 fallback: no cpu.X86 feature
// detection is available, so this uses a fixed, conservative threshold.
func platformSmallBatchThreshold() int {
	return 32
}
