// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx_test

import (
	"code.hybscloud.com/lrx"
)

// counter is a minimal duplicable value for protocol tests.
type counter struct {
	n int
}

func (c *counter) DuplicateFrom(src *counter) {
	c.n = src.n
}

// mirror holds two fields every operation leaves equal; a torn read
// surfaces as a mismatch between them.
type mirror struct {
	a, b uint64
}

func (m *mirror) DuplicateFrom(src *mirror) {
	m.a, m.b = src.a, src.b
}

// publishWait drives op through the stepping world: retries Publish on
// iox.ErrWouldBlock, then completes the reconciliation via TryReconcile.
// Used by stepping tests to exercise the non-blocking path.
func publishWait[T lrx.Duplicable[T]](w *lrx.WriteHandle[T], op func(T) error) error {
	for {
		err := w.Publish(op)
		if lrx.IsWouldBlock(err) {
			continue
		}
		if err != nil {
			return err
		}
		break
	}
	for {
		if err := w.TryReconcile(); !lrx.IsWouldBlock(err) {
			return err
		}
	}
}
