// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// PickLoadSigns rewrites (i32.load8_s p) & 0xFF into i32.load8_u p, and
// (i32.load16_s p) & 0xFFFF into i32.load16_u p: masking a sign-extending
// load down to its natural width is exactly what the unsigned load already
// does, so the mask and the sign flag both disappear.
type PickLoadSigns struct{}

// Name implements pass.Pass.
func (PickLoadSigns) Name() string { return pass.NamePickLoadSigns }

// Run implements pass.Pass.
func (p PickLoadSigns) Run(m *ir.Module) error {
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindBinary || (e.Op != ir.AndInt32 && e.Op != ir.AndInt64) {
			return
		}
		load, mask := pickLoadOperand(arena, e.A, e.B)
		if load == nil {
			return
		}
		var want uint64
		switch load.Bytes {
		case 1:
			want = 0xFF
		case 2:
			want = 0xFFFF
		default:
			return
		}
		if !load.Signed || maskLiteral(arena, mask) != want {
			return
		}
		load.Signed = false
		*e = *load
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}

// pickLoadOperand returns the operand that is a Load expression, if
// exactly one of a/b is, along with the other operand (the candidate mask).
func pickLoadOperand(arena *ir.Arena, a, b ir.ExprRef) (*ir.Expression, ir.ExprRef) {
	var ae, be *ir.Expression
	if a.Valid() {
		ae = arena.Get(a)
	}
	if b.Valid() {
		be = arena.Get(b)
	}
	aIsLoad := ae != nil && ae.Kind == ir.KindLoad
	bIsLoad := be != nil && be.Kind == ir.KindLoad
	switch {
	case aIsLoad && !bIsLoad:
		return ae, b
	case bIsLoad && !aIsLoad:
		return be, a
	default:
		return nil, 0
	}
}

// maskLiteral returns r's constant bit pattern, or a value that can never
// equal a legitimate mask if r isn't a matching constant.
func maskLiteral(arena *ir.Arena, r ir.ExprRef) uint64 {
	if !r.Valid() {
		return ^uint64(0)
	}
	e := arena.Get(r)
	if e.Kind != ir.KindConst {
		return ^uint64(0)
	}
	switch e.Literal.Kind {
	case types.LiteralI32:
		return uint64(e.Literal.GetU32())
	case types.LiteralI64:
		return e.Literal.GetU64()
	}
	return ^uint64(0)
}
