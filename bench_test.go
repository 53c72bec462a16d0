// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx_test

import (
	"testing"

	"code.hybscloud.com/lrx"
)

// BenchmarkWrite measures an uncontended write (apply, flip, reconcile).
func BenchmarkWrite(b *testing.B) {
	w, _ := lrx.New(&counter{}, &counter{})
	b.ReportAllocs()
	for b.Loop() {
		_ = w.Write(func(c *counter) error { c.n++; return nil })
	}
}

// BenchmarkPublishReconcile measures the stepping world without readers.
func BenchmarkPublishReconcile(b *testing.B) {
	w, _ := lrx.New(&counter{}, &counter{})
	b.ReportAllocs()
	for b.Loop() {
		_ = w.Publish(func(c *counter) error { c.n++; return nil })
		_ = w.TryReconcile()
	}
}

// BenchmarkRead measures a guarded read on an idle pair.
func BenchmarkRead(b *testing.B) {
	_, r := lrx.New(&counter{}, &counter{})
	b.ReportAllocs()
	for b.Loop() {
		g := r.Read()
		_ = g.Value().n
		g.Release()
	}
}

// BenchmarkView measures the scoped read convenience.
func BenchmarkView(b *testing.B) {
	_, r := lrx.New(&counter{}, &counter{})
	b.ReportAllocs()
	for b.Loop() {
		_ = lrx.View(r, func(c *counter) int { return c.n })
	}
}

// BenchmarkReadParallel measures read scaling across goroutines.
func BenchmarkReadParallel(b *testing.B) {
	skipRace(b)
	_, r := lrx.New(&counter{}, &counter{})
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g := r.Read()
			_ = g.Value().n
			g.Release()
		}
	})
}

// BenchmarkWriteUnderReaders measures writer progress with a reader
// goroutine churning guards.
func BenchmarkWriteUnderReaders(b *testing.B) {
	skipRace(b)
	w, r := lrx.New(&counter{}, &counter{})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			g := r.Read()
			_ = g.Value().n
			g.Release()
		}
	}()

	b.ReportAllocs()
	for b.Loop() {
		_ = w.Write(func(c *counter) error { c.n++; return nil })
	}
	close(stop)
	<-done
}

// BenchmarkNew measures pair construction.
func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		lrx.New(&counter{}, &counter{})
	}
}
