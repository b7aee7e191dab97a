// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package visitor

import (
	"testing"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestCountVisitsEveryNodeExactlyOnce(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	add := b.Binary(ir.AddInt32, one, two, types.I32)
	block := b.Block("", []ir.ExprRef{add}, types.I32)

	if got := Count(a, block); got != 4 {
		t.Fatalf("Count(block(add(const 1, const 2))) = %d, want 4", got)
	}
}

func TestBottomUpVisitsChildrenBeforeParent(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	add := b.Binary(ir.AddInt32, one, two, types.I32)

	var order []ir.Kind
	v := Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		order = append(order, e.Kind)
	})
	BottomUp(v, a, add)

	if len(order) != 3 {
		t.Fatalf("visited %d nodes, want 3", len(order))
	}
	if order[0] != ir.KindConst || order[1] != ir.KindConst || order[2] != ir.KindBinary {
		t.Fatalf("visit order = %v, want [Const Const Binary]", order)
	}
}

func TestVisitRewritesInPlace(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	lit := b.Const(types.I32Lit(1))

	zeroOutConsts := Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind == ir.KindConst {
			e.Literal = types.I32Lit(0)
		}
	})
	Visit(zeroOutConsts, a, lit)

	if got := a.Get(lit).Literal.GetI32(); got != 0 {
		t.Errorf("after Visit, literal = %d, want 0", got)
	}
}

func TestWalkReadOnlyAcceptsFunc(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))
	r := b.Const(types.I32Lit(9))

	seen := 0
	WalkReadOnly(Func(func(*ir.Arena, ir.ExprRef, *ir.Expression) { seen++ }), a, r)
	if seen != 1 {
		t.Errorf("WalkReadOnly visited %d nodes, want 1", seen)
	}
}
