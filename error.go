// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lrx

import (
	"code.hybscloud.com/iox"
)

// ErrWouldBlock reports that a non-blocking operation could not make
// progress: Publish while the previous write is unreconciled, or
// TryReconcile while a pre-flip reader still holds a guard. Sourced
// from [code.hybscloud.com/iox] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err is the would-block signal.
// Operation errors returned by Write and Publish pass through this
// package untouched and are never would-block unless the operation
// itself produced one.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than
// a failure. Delegates to iox.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a non-failure signal such
// as ErrWouldBlock. Delegates to iox.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
