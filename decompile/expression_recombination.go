// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// ExpressionRecombination finds locals that are written exactly once and
// read exactly once, where the write's value is a "simple expression"
// (constants, local gets, or pure unary/binary trees built from the same),
// and marks the set Inlined with the get redirected to the set's value via
// InlinedValue. A printer consulting these annotations omits the set
// statement entirely and substitutes the recorded value at the read site,
// recovering the single-use-expression style source code tends to have
// before a compiler spills every subexpression to a local.
type ExpressionRecombination struct{}

// Name implements Pass.
func (ExpressionRecombination) Name() string { return "expression-recombination" }

// Run implements Pass.
func (p ExpressionRecombination) Run(m *ir.Module, store *annotation.Store) {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		recombineFunction(m.Arena, store, fn)
	}
}

type localUses struct {
	setCount, getCount int
	setRef             ir.ExprRef
}

func recombineFunction(arena *ir.Arena, store *annotation.Store, fn *ir.Function) {
	n := fn.NumLocals()
	uses := make([]localUses, n)

	tally := visitor.Func(func(_ *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if int(e.Index) >= n {
			return
		}
		switch e.Kind {
		case ir.KindLocalSet, ir.KindLocalTee:
			uses[e.Index].setCount++
			uses[e.Index].setRef = r
		case ir.KindLocalGet:
			uses[e.Index].getCount++
		}
	})
	for _, r := range fn.Body {
		visitor.WalkReadOnly(tally, arena, r)
	}

	for idx := range uses {
		u := uses[idx]
		if u.setCount != 1 || u.getCount != 1 {
			continue
		}
		setExpr := arena.Get(u.setRef)
		if setExpr.Kind != ir.KindLocalSet && setExpr.Kind != ir.KindLocalTee {
			continue
		}
		if !isSimpleExpression(arena, setExpr.A) {
			continue
		}
		store.SetInlined(u.setRef)
		redirectGet(arena, store, fn, uint32(idx), setExpr.A)
	}
}

// isSimpleExpression reports whether r is a constant, a local get, or a
// pure unary/binary tree composed of the same — the set of subexpressions
// safe to duplicate at a single use site without reordering a side effect.
func isSimpleExpression(arena *ir.Arena, r ir.ExprRef) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	switch e.Kind {
	case ir.KindConst, ir.KindLocalGet:
		return true
	case ir.KindUnary:
		return isSimpleExpression(arena, e.A)
	case ir.KindBinary:
		return isSimpleExpression(arena, e.A) && isSimpleExpression(arena, e.B)
	default:
		return false
	}
}

func redirectGet(arena *ir.Arena, store *annotation.Store, fn *ir.Function, local uint32, value ir.ExprRef) {
	find := visitor.Func(func(_ *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind == ir.KindLocalGet && e.Index == local {
			store.SetInlinedValue(r, value)
		}
	})
	for _, r := range fn.Body {
		visitor.WalkReadOnly(find, arena, r)
	}
}
