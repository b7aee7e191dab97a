// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"testing"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestPrecomputeFoldsNestedArithmetic(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	// (1 + 2) * 3
	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	three := b.Const(types.I32Lit(3))
	sum := b.Binary(ir.AddInt32, one, two, types.I32)
	mul := b.Binary(ir.MulInt32, sum, three, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{mul}})

	if err := NewPrecompute().Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	root := a.Get(mul)
	if root.Kind != ir.KindConst || root.Literal.GetI32() != 9 {
		t.Fatalf("after Precompute, root = %+v, want const 9", root)
	}
}

func TestUnteeRewritesLocalTeeIntoBlock(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	val := b.Const(types.I32Lit(1))
	tee := b.LocalTee(0, val, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{tee}})

	if err := (Untee{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	e := a.Get(tee)
	if e.Kind != ir.KindBlock || len(e.List) != 2 {
		t.Fatalf("after Untee, node = %+v, want a 2-statement Block", e)
	}
	set := a.Get(e.List[0])
	get := a.Get(e.List[1])
	if set.Kind != ir.KindLocalSet || get.Kind != ir.KindLocalGet {
		t.Fatalf("Block contents = [%v, %v], want [LocalSet, LocalGet]", set.Kind, get.Kind)
	}
}

func TestUnteeIsIdempotent(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	val := b.Const(types.I32Lit(1))
	tee := b.LocalTee(0, val, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{tee}})

	p := Untee{}
	if err := p.Run(m); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := *a.Get(tee)
	if err := p.Run(m); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second := *a.Get(tee)
	if first.Kind != second.Kind || len(first.List) != len(second.List) {
		t.Fatalf("second Run changed the node: %+v -> %+v, want no change", first, second)
	}
}

func TestOptimizeInstructionsCollapsesAdditiveIdentities(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	x := b.LocalGet(0, types.I32)
	zero := b.Const(types.I32Lit(0))
	addZero := b.Binary(ir.AddInt32, x, zero, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{addZero}})

	if err := (OptimizeInstructions{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(addZero)
	if got.Kind != ir.KindLocalGet || got.Index != 0 {
		t.Fatalf("x+0 rewrote to %+v, want LocalGet(0)", got)
	}
}

func TestOptimizeInstructionsLeavesMulByZeroAlone(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	x := b.LocalGet(0, types.I32)
	zero := b.Const(types.I32Lit(0))
	mulZero := b.Binary(ir.MulInt32, x, zero, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{mulZero}})

	if err := (OptimizeInstructions{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(mulZero)
	if got.Kind != ir.KindBinary {
		t.Fatalf("x*0 rewrote to %+v, want it left alone (side-effecting operand)", got)
	}
}

func TestDCETruncatesAfterUnreachable(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	ret := b.Return(0)
	dead := b.Const(types.I32Lit(9))
	m.AddFunction(&ir.Function{Name: "f", Body: []ir.ExprRef{ret, dead}})

	fn := m.Functions[0]
	if err := (DCE{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("after DCE, body has %d statements, want 1 (truncated after the terminator)", len(fn.Body))
	}
}

func TestMergeBlocksFlattensNestedUnlabeledBlock(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	leaf := b.Const(types.I32Lit(1))
	inner := b.Block("", []ir.ExprRef{leaf}, types.I32)
	outer := b.Block("", []ir.ExprRef{inner}, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{outer}})

	if err := (MergeBlocks{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(outer)
	if len(got.List) != 1 || got.List[0] != leaf {
		t.Fatalf("after MergeBlocks, outer.List = %v, want [leaf] (flattened)", got.List)
	}
}

func TestMergeBlocksLeavesConflictingLabelsAlone(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	leaf := b.Const(types.I32Lit(1))
	inner := b.Block("inner", []ir.ExprRef{leaf}, types.I32)
	outer := b.Block("outer", []ir.ExprRef{inner}, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{outer}})

	if err := (MergeBlocks{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(outer)
	if len(got.List) != 1 || got.List[0] != inner {
		t.Fatalf("after MergeBlocks, outer.List = %v, want unchanged [inner] (conflicting labels)", got.List)
	}
}

func TestDuplicateFunctionEliminationRedirectsCallsToCanonical(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	litA := b.Const(types.I32Lit(7))
	litB := b.Const(types.I32Lit(7))
	m.AddFunction(&ir.Function{Name: "original", Results: types.I32, Body: []ir.ExprRef{litA}})
	m.AddFunction(&ir.Function{Name: "duplicate", Results: types.I32, Body: []ir.ExprRef{litB}})

	call := b.Call("duplicate", nil, false, types.I32)
	m.AddFunction(&ir.Function{Name: "caller", Results: types.I32, Body: []ir.ExprRef{call}})

	if err := (DuplicateFunctionElimination{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := a.Get(call); got.Name != "original" {
		t.Errorf("call target after elimination = %q, want %q", got.Name, "original")
	}
	if _, ok := m.GetFunctionIndex("duplicate"); ok {
		t.Error("duplicate function still present in module, want it dropped")
	}
}

func TestInliningSplicesSmallCalleeBody(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	param := b.LocalGet(0, types.I32)
	one := b.Const(types.I32Lit(1))
	calleeBody := b.Binary(ir.AddInt32, param, one, types.I32)
	m.AddFunction(&ir.Function{Name: "inc", Params: []types.Type{types.I32}, Results: types.I32, Body: []ir.ExprRef{calleeBody}})

	arg := b.Const(types.I32Lit(4))
	call := b.Call("inc", []ir.ExprRef{arg}, false, types.I32)
	m.AddFunction(&ir.Function{Name: "caller", Results: types.I32, Body: []ir.ExprRef{call}})

	if err := (Inlining{}).Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := a.Get(call)
	if got.Kind != ir.KindBlock {
		t.Fatalf("call site after Inlining = %+v, want a spliced Block", got)
	}

	caller, _ := m.GetFunctionIndex("caller")
	if len(m.Functions[caller].Vars) != 1 {
		t.Errorf("caller.Vars = %v, want 1 fresh local for the callee's single param", m.Functions[caller].Vars)
	}
}
