// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"testing"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestFlattenHoistsNestedBinaryOperand(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	// (x + 1) + 2
	x := b.LocalGet(0, types.I32)
	one := b.Const(types.I32Lit(1))
	inner := b.Binary(ir.AddInt32, x, one, types.I32)
	two := b.Const(types.I32Lit(2))
	outer := b.Binary(ir.AddInt32, inner, two, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{outer}})

	if err := (Flatten{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(outer)
	if got.Kind != ir.KindBlock || len(got.List) != 2 {
		t.Fatalf("after Flatten, root = %+v, want a 2-statement Block", got)
	}
	set := a.Get(got.List[0])
	rewritten := a.Get(got.List[1])
	if set.Kind != ir.KindLocalSet {
		t.Fatalf("List[0] = %+v, want LocalSet", set)
	}
	if rewritten.Kind != ir.KindBinary {
		t.Fatalf("List[1] = %+v, want Binary", rewritten)
	}
	left := a.Get(rewritten.A)
	if left.Kind != ir.KindLocalGet || left.Index != set.Index {
		t.Fatalf("rewritten left operand = %+v, want LocalGet(%d)", left, set.Index)
	}
}

func TestRSEDropsImmediatelyOverwrittenSet(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	first := b.Const(types.I32Lit(5))
	setFirst := b.LocalSet(0, first)
	second := b.Const(types.I32Lit(6))
	setSecond := b.LocalSet(0, second)
	m.AddFunction(&ir.Function{Name: "f", Vars: []types.Type{types.I32}, Body: []ir.ExprRef{setFirst, setSecond}})

	if err := (RSE{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(setFirst)
	if got.Kind != ir.KindDrop || got.A != first {
		t.Fatalf("after RSE, first set = %+v, want Drop(%v)", got, first)
	}
	if a.Get(setSecond).Kind != ir.KindLocalSet {
		t.Fatal("after RSE, the overwriting set should be untouched")
	}
}

func TestCodePushingSwapsConstSetPastUnrelatedStatement(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	setA := b.LocalSet(0, b.Const(types.I32Lit(1)))
	setB := b.LocalSet(1, b.Const(types.I32Lit(2)))
	m.AddFunction(&ir.Function{Name: "f", Vars: []types.Type{types.I32, types.I32}, Body: []ir.ExprRef{setA, setB}})
	fn := m.Functions[0]

	if err := (CodePushing{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fn.Body[0] != setB || fn.Body[1] != setA {
		t.Fatalf("after CodePushing, Body = %v, want [setB, setA] swapped", fn.Body)
	}
}

func TestCodePushingLeavesReferencedLocalAlone(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	setA := b.LocalSet(0, b.Const(types.I32Lit(1)))
	useA := b.LocalGet(0, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Vars: []types.Type{types.I32}, Body: []ir.ExprRef{setA, useA}})
	fn := m.Functions[0]

	if err := (CodePushing{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fn.Body[0] != setA || fn.Body[1] != useA {
		t.Fatalf("after CodePushing, Body = %v, want unchanged (next statement reads local 0)", fn.Body)
	}
}

func TestMergeLocalsRewritesLaterGetsToOriginal(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	setA := b.LocalSet(0, b.Const(types.I32Lit(7)))
	setB := b.LocalSet(1, b.LocalGet(0, types.I32))
	useB := b.LocalGet(1, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Vars: []types.Type{types.I32, types.I32}, Body: []ir.ExprRef{setA, setB, useB}})

	if err := (MergeLocals{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if a.Get(setB).Kind != ir.KindNop {
		t.Fatalf("after MergeLocals, copy statement = %+v, want Nop", a.Get(setB))
	}
	if got := a.Get(useB); got.Kind != ir.KindLocalGet || got.Index != 0 {
		t.Fatalf("after MergeLocals, later use = %+v, want LocalGet(0)", got)
	}
}

func TestLICMHoistsLoopInvariantConstSet(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	setInvariant := b.LocalSet(0, b.Const(types.I32Lit(9)))
	useInvariant := b.LocalGet(0, types.I32)
	loopBody := b.Block("", []ir.ExprRef{setInvariant, useInvariant}, types.None)
	loop := b.Loop("", loopBody)
	m.AddFunction(&ir.Function{Name: "f", Vars: []types.Type{types.I32}, Body: []ir.ExprRef{loop}})
	fn := m.Functions[0]

	if err := (LICM{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fn.Body) != 2 || fn.Body[0] != setInvariant || fn.Body[1] != loop {
		t.Fatalf("after LICM, Body = %v, want [setInvariant, loop]", fn.Body)
	}
	body := a.Get(loopBody)
	if len(body.List) != 1 || body.List[0] != useInvariant {
		t.Fatalf("after LICM, loop body = %v, want [useInvariant] (set hoisted out)", body.List)
	}
}

func TestRemoveUnusedElementsDropsUnreferencedSegmentAndRemaps(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	unused := &ir.ElementSegment{Passive: true}
	used := &ir.ElementSegment{Passive: true, Funcs: []uint32{0}}
	m.Elements = []*ir.ElementSegment{unused, used}
	m.AddFunction(&ir.Function{Name: "f", Body: nil})

	// table.init naming segment 1 (the used one). Segment 1 survives because
	// it lists a function; f is not reachable, so this table.init does not
	// count as a use, but its index is still remapped.
	tableInit := b.Nop()
	*a.Get(tableInit) = ir.Expression{Kind: ir.KindTableInit, Index: 1}
	m.Functions[0].Body = []ir.ExprRef{tableInit}

	if err := (RemoveUnusedElements{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(m.Elements) != 1 || m.Elements[0] != used {
		t.Fatalf("after RemoveUnusedElements, Elements = %v, want [used]", m.Elements)
	}
	if got := a.Get(tableInit).Index; got != 0 {
		t.Fatalf("after RemoveUnusedElements, table.init segment index = %d, want 0 (remapped)", got)
	}
}
