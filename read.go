// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

// ReadHandle provides wait-free snapshot access to the protected
// value. The handle is stateless: any number of goroutines may call
// Read concurrently on the same handle.
type ReadHandle[T Duplicable[T]] struct {
	c *core[T]
}

// Read acquires the currently published value. It never fails and
// never waits on the writer or on other readers; at most it allocates
// a fresh registry slot when the free list cannot supply one.
//
// The returned guard pins the acquired generation: the writer cannot
// reconcile over the observed instance until Release. Hold guards
// briefly. A held guard parks the writer, never other readers.
func (r *ReadHandle[T]) Read() ReadGuard[T] {
	c := r.c
	s := c.reg.acquire()
	stamp := s.serial.Add(1)
	g := c.reg.enter(&c.gen, s)
	return ReadGuard[T]{v: c.slots[g&1], reg: &c.reg, s: s, gen: g, stamp: stamp}
}

// Serial returns the serial number assigned to the underlying pair.
func (r *ReadHandle[T]) Serial() Serial {
	return r.c.serial
}

// View runs f against the published value inside a guard and returns
// f's result. Convenience for point reads; f must not retain the
// value past its return.
func View[T Duplicable[T], R any](r *ReadHandle[T], f func(T) R) R {
	g := r.Read()
	defer g.Release()
	return f(g.Value())
}

// ReadGuard is an acquired snapshot view. The zero value is invalid.
// Copies of a guard share one acquisition: Release exactly once across
// all copies, and do not touch the value after Release.
type ReadGuard[T any] struct {
	v     T
	reg   *registry
	s     *slot
	gen   uint64
	stamp uint32
}

// Value returns the pinned snapshot. The instance must not be read
// after Release: the writer reconciles over it once the pin is gone.
func (g ReadGuard[T]) Value() T {
	return g.v
}

// Generation returns the publication generation the guard pinned.
// Guards acquired later never report a smaller generation.
func (g ReadGuard[T]) Generation() uint64 {
	return g.gen
}

// Release ends the critical section and recycles the registry slot.
// Releasing the zero guard, releasing twice, or releasing a guard
// whose slot has been reused panics.
//
// The serial CAS is the commit point: exactly one release per
// acquisition can win it, so a duplicate release panics instead of
// stomping a reader that re-acquired the slot.
func (g ReadGuard[T]) Release() {
	if g.s == nil {
		panic("lrx: release of zero ReadGuard")
	}
	if !g.s.serial.CompareAndSwap(g.stamp, g.stamp+1) {
		panic("lrx: ReadGuard released twice")
	}
	g.s.state.Store(0)
	g.reg.recycle(g.s)
}
