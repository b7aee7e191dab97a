// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package passes implements the concrete optimization and transformation
// passes run over the ir package's expression graph, each satisfying
// pass.Pass. One file per pass; every rewrite mutates a node's Expression
// in place (via replaceWith) so that parent nodes, which hold the node's
// ExprRef rather than a pointer, observe the change without themselves
// being rewritten.
package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// replaceWith overwrites the node at target with a copy of source's
// Expression, so every existing reference to target now observes source's
// shape without the caller needing to rewrite target's parent.
func replaceWith(arena *ir.Arena, target, source ir.ExprRef) {
	*arena.Get(target) = *arena.Get(source)
}

// OptimizeInstructions applies a fixed set of algebraic identities
// bottom-up over every function body: x+0, 0+x, x-0, x*1, 1*x, x|0, 0|x,
// x^0, 0^x, x&-1, -1&x all collapse to x. Rules that would drop a
// side-effecting operand (x*0, x&0) are deliberately omitted.
type OptimizeInstructions struct{}

// Name implements pass.Pass.
func (OptimizeInstructions) Name() string { return pass.NameOptimizeInstructions }

// Run implements pass.Pass.
func (p OptimizeInstructions) Run(m *ir.Module) error {
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		simplifyIdentity(arena, r, e)
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}

func simplifyIdentity(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
	if e.Kind != ir.KindBinary {
		return
	}

	isZero := func(c ir.ExprRef) bool {
		if !c.Valid() {
			return false
		}
		ce := arena.Get(c)
		return ce.Kind == ir.KindConst && isZeroLiteral(ce)
	}
	isAllOnes := func(c ir.ExprRef) bool {
		if !c.Valid() {
			return false
		}
		ce := arena.Get(c)
		return ce.Kind == ir.KindConst && isAllOnesLiteral(ce)
	}
	isOne := func(c ir.ExprRef) bool {
		if !c.Valid() {
			return false
		}
		ce := arena.Get(c)
		return ce.Kind == ir.KindConst && isOneLiteral(ce)
	}

	switch e.Op {
	case ir.AddInt32, ir.AddInt64, ir.AddFloat32, ir.AddFloat64,
		ir.OrInt32, ir.OrInt64, ir.XorInt32, ir.XorInt64:
		if isZero(e.B) {
			replaceWith(arena, r, e.A)
		} else if isZero(e.A) {
			replaceWith(arena, r, e.B)
		}
	case ir.SubInt32, ir.SubInt64, ir.SubFloat32, ir.SubFloat64:
		if isZero(e.B) {
			replaceWith(arena, r, e.A)
		}
	case ir.MulInt32, ir.MulInt64, ir.MulFloat32, ir.MulFloat64:
		if isOne(e.B) {
			replaceWith(arena, r, e.A)
		} else if isOne(e.A) {
			replaceWith(arena, r, e.B)
		}
	case ir.AndInt32, ir.AndInt64:
		if isAllOnes(e.B) {
			replaceWith(arena, r, e.A)
		} else if isAllOnes(e.A) {
			replaceWith(arena, r, e.B)
		}
	}
}

func isZeroLiteral(e *ir.Expression) bool {
	switch e.Literal.Kind {
	case types.LiteralI32:
		return e.Literal.GetI32() == 0
	case types.LiteralI64:
		return e.Literal.GetI64() == 0
	case types.LiteralF32:
		return e.Literal.GetF32() == 0
	case types.LiteralF64:
		return e.Literal.GetF64() == 0
	}
	return false
}

func isOneLiteral(e *ir.Expression) bool {
	switch e.Literal.Kind {
	case types.LiteralI32:
		return e.Literal.GetI32() == 1
	case types.LiteralI64:
		return e.Literal.GetI64() == 1
	case types.LiteralF32:
		return e.Literal.GetF32() == 1
	case types.LiteralF64:
		return e.Literal.GetF64() == 1
	}
	return false
}

func isAllOnesLiteral(e *ir.Expression) bool {
	switch e.Literal.Kind {
	case types.LiteralI32:
		return e.Literal.GetI32() == -1
	case types.LiteralI64:
		return e.Literal.GetI64() == -1
	}
	return false
}
