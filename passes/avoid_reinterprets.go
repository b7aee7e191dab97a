// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// reinterpretInverse pairs each reinterpret operator with the one that
// undoes it.
var reinterpretInverse = map[ir.Op]ir.Op{
	ir.ReinterpretInt32AsFloat32: ir.ReinterpretFloat32AsInt32,
	ir.ReinterpretFloat32AsInt32: ir.ReinterpretInt32AsFloat32,
	ir.ReinterpretInt64AsFloat64: ir.ReinterpretFloat64AsInt64,
	ir.ReinterpretFloat64AsInt64: ir.ReinterpretInt64AsFloat64,
}

// AvoidReinterprets collapses reinterpret_T(reinterpret_U(x)) into x for
// each of the four paired integer/float reinterpret operators.
type AvoidReinterprets struct{}

// Name implements pass.Pass.
func (AvoidReinterprets) Name() string { return pass.NameAvoidReinterprets }

// Run implements pass.Pass.
func (p AvoidReinterprets) Run(m *ir.Module) error {
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindUnary {
			return
		}
		inverse, ok := reinterpretInverse[e.Op]
		if !ok || !e.A.Valid() {
			return
		}
		inner := arena.Get(e.A)
		if inner.Kind == ir.KindUnary && inner.Op == inverse {
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
