// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lrx provides a left-right concurrency primitive: one writer
// mutates a protected value while any number of readers observe
// consistent snapshots, wait-free on the read path.
//
// Two instances of the value back the primitive. Readers always see the
// published instance; the writer mutates the staging instance and
// publishes it by flipping a generation word. Because write operations
// may carry external side effects, the stale instance is reconciled by
// [Duplicable] duplication instead of running the operation a second
// time: every operation's effects happen exactly once, and readers
// never observe a torn value.
//
// # Architecture
//
//   - Buffers: two caller-supplied instances of T behind a
//     [WriteHandle]/[ReadHandle] pair from [New]. The published index
//     and the generation share one atomic word, so a flip is a single
//     Add with no intermediate state.
//   - Registry: readers mark per-acquisition slots on a grow-only
//     chain the writer scans; idle slots recycle through a bounded
//     MPMC free list via [code.hybscloud.com/lfq].
//   - Non-blocking: stepping-world operations return
//     [code.hybscloud.com/iox.ErrWouldBlock] instead of waiting.
//   - Misuse detection: guard double-release and concurrent
//     WriteHandle use panic, backed by [code.hybscloud.com/atomix]
//     counters.
//
// # API Topologies
//
//   - Write world (blocking): [WriteHandle.Write] and [Apply] publish
//     and reconcile in one call, waiting past reader critical sections
//     with adaptive backoff (iox.Backoff).
//   - Stepping world (non-blocking): [WriteHandle.Publish],
//     [WriteHandle.TryReconcile], [WriteHandle.Reconcile],
//     [WriteHandle.Pending] make writes visible immediately and leave
//     draining the old generation to the caller's loop.
//   - Read world: [ReadHandle.Read] returns a pinned [ReadGuard];
//     [View] scopes a read to a callback. Reads never fail and never
//     wait on the writer.
//
// # Integration
//
//   - Stepping: drive Publish/TryReconcile from a proactor loop; a
//     pending reconciliation refuses further publishes (ErrWouldBlock)
//     until pre-flip readers drain.
//   - Blocking: Write composes publish and reconcile; a held guard
//     parks the writer, never other readers.
//
// # Example
//
//	w, r := lrx.New(&counter{}, &counter{})
//	_ = w.Write(func(c *counter) error { c.n++; return nil })
//	g := r.Read()
//	n := g.Value().n
//	g.Release()
//	_ = n
package lrx
