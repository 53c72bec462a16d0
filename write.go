// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

import (
	"code.hybscloud.com/atomix"
)

// noCopy flags pass-by-value of a single-owner type to go vet.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// WriteHandle is the single mutator of a left-right pair. Handles are
// created by [New] only and must not be copied.
//
// The handle is single-owner: methods must not be called concurrently.
// Detected concurrent use panics. pending and dirty below are owned
// writer state, touched only between a successful busy claim and its
// release.
type WriteHandle[T Duplicable[T]] struct {
	_    noCopy
	c    *core[T]
	busy atomix.Uint32

	// pending: the last flip has not been reconciled yet.
	// dirty: the staging slot holds a failed or interrupted
	// operation's partial state and must be rebuilt from the
	// published slot before the next apply.
	pending bool
	dirty   bool
}

func (w *WriteHandle[T]) claim() {
	if !w.busy.CompareAndSwap(0, 1) {
		panic("lrx: concurrent use of WriteHandle")
	}
}

func (w *WriteHandle[T]) release() {
	w.busy.Store(0)
}

// apply runs op against the staging slot and, on success, flips. The
// caller must have completed any pending reconciliation first, so the
// staging slot carries no unpublished write and no pre-flip reader
// can still hold it.
func (w *WriteHandle[T]) apply(op func(T) error) error {
	g := w.c.gen.Load()
	stage := w.c.staging(g)
	if w.dirty {
		stage.DuplicateFrom(w.c.slots[g&1])
		w.dirty = false
	}
	w.dirty = true
	if err := op(stage); err != nil {
		return err
	}
	w.c.flip()
	w.dirty = false
	w.pending = true
	return nil
}

// settle awaits quiescence of the pre-flip readers and reconciles the
// stale slot by duplication.
func (w *WriteHandle[T]) settle() {
	g := w.c.gen.Load()
	w.c.reg.awaitQuiescence(g)
	w.c.reconcile(g)
	w.pending = false
}

// trySettle reconciles after a single registry scan. Reports whether
// the pending reconciliation completed.
func (w *WriteHandle[T]) trySettle() bool {
	g := w.c.gen.Load()
	if w.c.reg.blocked(g) {
		return false
	}
	w.c.reconcile(g)
	w.pending = false
	return true
}

// Write applies op to the staging slot and publishes the result,
// waiting past reader critical sections with adaptive backoff
// (iox.Backoff). On return both slots are value-equal again and every
// read entered after the internal flip observes op's effects.
//
// op runs exactly once, against the instance no reader can see. Its
// error is returned unmodified; on error nothing is published and the
// partial mutation is discarded before the next write applies.
func (w *WriteHandle[T]) Write(op func(T) error) error {
	w.claim()
	defer w.release()
	if w.pending {
		w.settle()
	}
	if err := w.apply(op); err != nil {
		return err
	}
	w.settle()
	return nil
}

// Apply runs a result-returning operation through [WriteHandle.Write].
// The result is valid only when the returned error is nil; on error
// the failed-write contract of Write applies.
func Apply[T Duplicable[T], R any](w *WriteHandle[T], op func(T) (R, error)) (R, error) {
	var out R
	err := w.Write(func(v T) error {
		r, err := op(v)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

// Reader returns a read handle for the same pair. All read handles of
// one pair are equivalent views.
func (w *WriteHandle[T]) Reader() *ReadHandle[T] {
	return &ReadHandle[T]{c: w.c}
}

// Serial returns the serial number assigned to the underlying pair.
func (w *WriteHandle[T]) Serial() Serial {
	return w.c.serial
}
