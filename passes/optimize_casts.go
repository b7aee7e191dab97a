// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// OptimizeCasts collapses wrap_i64(extend_s_i32(x)) and
// wrap_i64(extend_u_i32(x)) into x: widening an i32 to i64 and immediately
// wrapping it back to i32 recovers the original value regardless of
// signedness.
type OptimizeCasts struct{}

// Name implements pass.Pass.
func (OptimizeCasts) Name() string { return pass.NameOptimizeCasts }

// Run implements pass.Pass.
func (p OptimizeCasts) Run(m *ir.Module) error {
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindUnary || e.Op != ir.WrapInt64ToInt32 || !e.A.Valid() {
			return
		}
		inner := arena.Get(e.A)
		if inner.Kind == ir.KindUnary && (inner.Op == ir.ExtendSInt32ToInt64 || inner.Op == ir.ExtendUInt32ToInt64) {
			replaceWith(arena, r, inner.A)
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}
