// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// slot is one reader registration cell. state packs the observed
// generation and a live bit into a single word:
//
//	0:          idle
//	g<<1 | 1:   a reader inside a critical section that observed
//	            generation g
//
// One word keeps registration a single store with no two-field
// ordering window. serial advances once per acquisition and once per
// release (odd while held); the release-side CAS on it is the guard
// misuse check. next is immutable once the slot is linked.
type slot struct {
	state  atomic.Uint64
	serial atomix.Uint32
	next   *slot
	_      [40]byte // keep slots on separate cache lines; each reader writes its own state
}

// registry tracks reader slots: a grow-only chain the writer scans,
// plus an MPMC free list recycling idle slots across reader
// goroutines. Slots are never unlinked, so the scan can run
// concurrently with registration; a slot that misses the bounded free
// list stays chained and idle.
type registry struct {
	head atomic.Pointer[slot]
	free *lfq.MPMC[*slot]
}

func (r *registry) init() {
	r.free = lfq.NewMPMC[*slot](freeListCapacity)
}

// acquire returns an idle slot, reusing one from the free list when it
// can supply one. Fresh slots are linked before use so the writer's
// scan observes them.
func (r *registry) acquire() *slot {
	s, err := r.free.Dequeue()
	if err != nil {
		s = &slot{}
		r.link(s)
	}
	return s
}

// link prepends s to the chain. s.next is immutable after the CAS
// publishes it.
func (r *registry) link(s *slot) {
	for {
		head := r.head.Load()
		s.next = head
		if r.head.CompareAndSwap(head, s) {
			return
		}
	}
}

// recycle returns an idle slot to the free list. When the bounded list
// cannot take it the slot is left chained and idle; the registry then
// grows by at most one slot on a later acquire.
func (r *registry) recycle(s *slot) {
	_ = r.free.Enqueue(&s)
}

// enter marks s live at the current generation of gen and returns the
// generation it committed at.
//
// The store-then-revalidate loop closes the window against a
// concurrent flip: if gen moved between the load and the store, the
// mark is rewritten under the new value before the reader commits.
// Once the reload matches, the total order of sync/atomic operations
// guarantees the writer's next scan observes the mark.
func (r *registry) enter(gen *atomic.Uint64, s *slot) uint64 {
	for {
		g := gen.Load()
		s.state.Store(g<<1 | 1)
		if gen.Load() == g {
			return g
		}
	}
}

// blocked reports whether any slot is live below generation g.
// One full pass, no waiting.
func (r *registry) blocked(g uint64) bool {
	for s := r.head.Load(); s != nil; s = s.next {
		if st := s.state.Load(); st&1 != 0 && st>>1 < g {
			return true
		}
	}
	return false
}

// awaitQuiescence blocks until no slot is live below generation g,
// backing off per blocking slot with iox.Backoff.
//
// A single pass with a per-slot wait suffices: the writer is parked
// here, so the generation cannot move, and a drained slot re-enters at
// the current generation, never below g again. Slots linked after the
// pass started entered at the current generation and cannot block
// either.
func (r *registry) awaitQuiescence(g uint64) {
	var bo iox.Backoff
	for s := r.head.Load(); s != nil; s = s.next {
		for {
			st := s.state.Load()
			if st&1 == 0 || st>>1 >= g {
				break
			}
			bo.Wait()
		}
		bo.Reset()
	}
}
