// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

import (
	"code.hybscloud.com/iox"
)

// Publish applies op to the staging slot and flips, leaving the
// reconciliation of the stale slot pending. The write is visible to
// every read entered after the flip; [WriteHandle.Pending] reports the
// outstanding reconciliation and [WriteHandle.TryReconcile] or
// [WriteHandle.Reconcile] completes it.
//
// While a reconciliation is pending the staging slot is one write
// stale and must not take another operation (flipping it would
// unpublish the pending write). Publish first attempts a single-scan
// reconciliation; if a pre-flip reader still holds a guard it returns
// iox.ErrWouldBlock without running op, and may be retried after
// readers make progress.
//
// On success (nil), op ran exactly once and its effects are published.
// On op failure the error is returned unmodified and nothing is
// published.
func (w *WriteHandle[T]) Publish(op func(T) error) error {
	w.claim()
	defer w.release()
	if w.pending && !w.trySettle() {
		return iox.ErrWouldBlock
	}
	return w.apply(op)
}

// TryReconcile attempts to complete a pending reconciliation with a
// single registry scan. Returns nil when both slots are value-equal
// again (or nothing was pending); returns iox.ErrWouldBlock while a
// pre-flip reader still holds a guard, leaving the pending
// reconciliation in place.
func (w *WriteHandle[T]) TryReconcile() error {
	w.claim()
	defer w.release()
	if w.pending && !w.trySettle() {
		return iox.ErrWouldBlock
	}
	return nil
}

// Reconcile completes any pending reconciliation, waiting past reader
// critical sections with adaptive backoff (iox.Backoff). No-op when
// nothing is pending.
func (w *WriteHandle[T]) Reconcile() {
	w.claim()
	defer w.release()
	if w.pending {
		w.settle()
	}
}

// Pending reports whether the last flip's reconciliation is still
// outstanding.
func (w *WriteHandle[T]) Pending() bool {
	w.claim()
	defer w.release()
	return w.pending
}
