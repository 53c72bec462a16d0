// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

import (
	"sync/atomic"
)

// freeListCapacity is the bounded capacity of the reader slot free list.
// 256 covers realistic reader-goroutine churn while keeping the lfq ring
// small; overflow is harmless because slots stay linked in the registry
// and are simply not reused.
const freeListCapacity = 256

// Duplicable is the capability required of a protected value: an
// in-place structural copy that leaves the receiver observably equal
// to src.
//
// DuplicateFrom must be free of external side effects. The write
// protocol invokes it once per write to reconcile the stale buffer, on
// state whose effects already happened. Operations passed to
// [WriteHandle.Write] carry the side effects; duplication carries none.
type Duplicable[T any] interface {
	// DuplicateFrom overwrites the receiver's observable state with a
	// copy of src. The receiver and src are never the same instance.
	DuplicateFrom(src T)
}

// core is the shared state behind one handle family: the two buffer
// slots and the fused generation/publication word.
//
// gen counts completed flips and gen&1 indexes the published slot, so
// publication and generation advance in one atomic Add and no
// "neither or both published" state can be observed. The slots array
// is fixed at construction; only the pointees mutate.
type core[T Duplicable[T]] struct {
	gen    atomic.Uint64
	slots  [2]T
	reg    registry
	serial Serial
}

// staging returns the writer-owned slot for generation g.
func (c *core[T]) staging(g uint64) T {
	return c.slots[g&1^1]
}

// flip publishes the staging slot by advancing the generation and
// returns the new generation. Readers that enter afterwards observe
// the new slot; the old slot drains as its pre-flip readers release.
func (c *core[T]) flip() uint64 {
	return c.gen.Add(1)
}

// reconcile duplicates the published value of generation g over the
// stale slot. The caller must have established quiescence for g first.
func (c *core[T]) reconcile(g uint64) {
	c.slots[g&1^1].DuplicateFrom(c.slots[g&1])
}

// handlePair holds both handles and the shared core in a single
// allocation. The registry chain and the lfq free-list ring are the
// only separate heap objects.
type handlePair[T Duplicable[T]] struct {
	w WriteHandle[T]
	r ReadHandle[T]
	c core[T]
}

// New creates a left-right pair over two instances of the protected
// value.
//
// initial becomes the published value; spare's observable state is
// overwritten with a duplicate of initial so both slots start equal.
// The two arguments must be distinct instances: they are the two
// buffer slots of one protected value, not two values.
//
// The WriteHandle is single-owner and its methods must not be called
// concurrently. The ReadHandle is freely shareable across goroutines;
// further handles come from [WriteHandle.Reader].
func New[T Duplicable[T]](initial, spare T) (*WriteHandle[T], *ReadHandle[T]) {
	s := nextSerial()

	spare.DuplicateFrom(initial)

	pair := &handlePair[T]{}
	pair.c.slots = [2]T{initial, spare}
	pair.c.serial = s
	pair.c.reg.init()
	pair.w.c = &pair.c
	pair.r.c = &pair.c
	return &pair.w, &pair.r
}
