// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
)

// I64ToI32Lowering is illustrative rather than a complete i64 elimination: it
// adds one mutable i32 global holding the "high bits" of the most recently
// lowered 64-bit constant, and rewrites every Const(i64) node into
//
//	Block{ GlobalSet(high, i32(v>>32)); i32(v) }
//
// so the block's own result carries the low 32 bits and the global carries
// the high 32 bits for a caller to pick up. A full lowering would need to
// thread that same high-bits global through every i64-producing expression
// kind (Binary, Load, Call results, ...), not just constants; that is an
// order-of-magnitude larger transform and out of scope here.
type I64ToI32Lowering struct{}

// Name implements pass.Pass.
func (I64ToI32Lowering) Name() string { return pass.NameI64ToI32Lowering }

const highBitsGlobalName = "$i64_to_i32_high"

// Run implements pass.Pass.
func (p I64ToI32Lowering) Run(m *ir.Module) error {
	hasI64Const := false
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			if containsI64Const(m.Arena, r) {
				hasI64Const = true
				break
			}
		}
		if hasI64Const {
			break
		}
	}
	if !hasI64Const {
		return nil
	}

	highGlobal := m.AddGlobal(&ir.Global{
		Name:    highBitsGlobalName,
		Type:    types.I32,
		Mutable: true,
		Init:    ir.NewBuilder(m).Const(types.I32Lit(0)),
	})

	b := ir.NewBuilder(m)
	for _, fn := range m.Functions {
		for i, r := range fn.Body {
			fn.Body[i] = lowerI64Consts(m.Arena, b, r, highGlobal)
		}
	}
	return nil
}

func containsI64Const(arena *ir.Arena, r ir.ExprRef) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	if e.Kind == ir.KindConst && e.Type == types.I64 {
		return true
	}
	for _, c := range e.List {
		if containsI64Const(arena, c) {
			return true
		}
	}
	return containsI64Const(arena, e.A) || containsI64Const(arena, e.B) || containsI64Const(arena, e.C)
}

// lowerI64Consts rewrites r in place (returning its own ref, unchanged
// identity) after first recursing into every child so that nested i64
// constants are lowered bottom-up. Const(i64 v) itself is converted into a
// Block by copying the Block's Expression over r's arena slot, mirroring
// every other pass in this package's in-place replaceWith convention.
func lowerI64Consts(arena *ir.Arena, b *ir.Builder, r ir.ExprRef, highGlobal uint32) ir.ExprRef {
	if !r.Valid() {
		return r
	}
	e := arena.Get(r)

	for i, c := range e.List {
		e.List[i] = lowerI64Consts(arena, b, c, highGlobal)
	}
	e.A = lowerI64Consts(arena, b, e.A, highGlobal)
	e.B = lowerI64Consts(arena, b, e.B, highGlobal)
	e.C = lowerI64Consts(arena, b, e.C, highGlobal)

	if e.Kind != ir.KindConst || e.Type != types.I64 {
		return r
	}

	v := e.Literal.GetI64()
	high := b.Const(types.I32Lit(int32(uint64(v) >> 32)))
	low := b.Const(types.I32Lit(int32(v)))
	setHigh := b.GlobalSet(highGlobal, high)
	block := b.Block("", []ir.ExprRef{setHigh, low}, types.I32)
	replaceWith(arena, r, block)
	return r
}
