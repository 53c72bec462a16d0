// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lrx_test

import "testing"

// skipRace skips tests that recycle reader slots through the lfq free
// list from multiple goroutines. The race detector tracks per-variable
// happens-before and cannot see the queue's cross-variable memory
// ordering (store-release on data, load-acquire on index), producing
// false positives. The core protocol itself runs on sync/atomic and
// stays race-enabled in the single-goroutine tests.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: lfq free list uses cross-variable memory ordering")
}
