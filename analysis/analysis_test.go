// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"testing"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

// buildDiamond builds `(if cond thenConst elseConst) ; joinConst` and
// returns the function and its CFG, so the entry/then/else/join block IDs
// can be asserted against directly.
func buildDiamond(t *testing.T) (*ir.Arena, *ir.Function, *CFG) {
	t.Helper()
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	cond := b.LocalGet(0, types.I32)
	thenConst := b.Const(types.I32Lit(1))
	elseConst := b.Const(types.I32Lit(2))
	ifExpr := b.If(cond, thenConst, elseConst, types.None)
	joinConst := b.Const(types.I32Lit(3))

	fn := &ir.Function{
		Name:   "f",
		Params: []types.Type{types.I32},
		Body:   []ir.ExprRef{ifExpr, joinConst},
	}
	cfg := BuildCFG(a, fn)
	return a, fn, cfg
}

func TestBuildCFGDiamond(t *testing.T) {
	_, _, cfg := buildDiamond(t)

	if len(cfg.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4 (entry, join, then, else): %+v", len(cfg.Blocks), cfg.Blocks)
	}

	entry := cfg.Blocks[cfg.Entry]
	if len(entry.Succs) != 2 {
		t.Fatalf("entry.Succs = %v, want 2 successors (then, else)", entry.Succs)
	}

	thenID, elseID := entry.Succs[0], entry.Succs[1]
	then, els := cfg.Blocks[thenID], cfg.Blocks[elseID]

	if len(then.Succs) != 1 || len(els.Succs) != 1 || then.Succs[0] != els.Succs[0] {
		t.Fatalf("then/else must converge on one join block: then=%v else=%v", then.Succs, els.Succs)
	}
	join := cfg.Blocks[then.Succs[0]]

	if !containsBlock(join.Preds, thenID) || !containsBlock(join.Preds, elseID) {
		t.Fatalf("join.Preds = %v, want both %v and %v", join.Preds, thenID, elseID)
	}
	if len(join.Preds) != 2 {
		t.Fatalf("join.Preds = %v, want exactly 2 preds", join.Preds)
	}
}

func containsBlock(ids []BlockID, id BlockID) bool {
	for _, b := range ids {
		if b == id {
			return true
		}
	}
	return false
}

func TestBuildDominanceTreeDiamond(t *testing.T) {
	_, _, cfg := buildDiamond(t)
	dom := BuildDominanceTree(cfg)

	entry := cfg.Entry
	thenID, elseID := cfg.Blocks[entry].Succs[0], cfg.Blocks[entry].Succs[1]
	joinID := cfg.Blocks[thenID].Succs[0]

	for _, b := range []BlockID{entry, thenID, elseID, joinID} {
		if !dom.Dominates(entry, b) {
			t.Errorf("entry does not dominate block %v, want it to dominate every reachable block", b)
		}
	}
	if dom.Dominates(thenID, joinID) {
		t.Errorf("then-arm dominates join, want it not to (else-arm also reaches join)")
	}
	if dom.Dominates(elseID, joinID) {
		t.Errorf("else-arm dominates join, want it not to (then-arm also reaches join)")
	}

	idom, ok := dom.ImmediateDominator(joinID)
	if !ok || idom != entry {
		t.Errorf("ImmediateDominator(join) = (%v, %v), want (entry, true)", idom, ok)
	}

	if !dom.DominanceFrontier(thenID)[joinID] {
		t.Errorf("DominanceFrontier(then) = %v, want it to contain join %v", dom.DominanceFrontier(thenID), joinID)
	}
	if !dom.DominanceFrontier(elseID)[joinID] {
		t.Errorf("DominanceFrontier(else) = %v, want it to contain join %v", dom.DominanceFrontier(elseID), joinID)
	}
}

func TestBuildCallGraphDirectEdgesOnly(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	call := b.Call("callee", nil, false, types.None)
	indirectIdx := b.Const(types.I32Lit(0))
	indirect := b.CallIndirect(0, types.None, indirectIdx, nil, false, types.None)

	m.AddFunction(&ir.Function{Name: "caller", Body: []ir.ExprRef{call, indirect}})
	m.AddFunction(&ir.Function{Name: "callee"})

	g := BuildCallGraph(m)

	if !g.HasEdge("caller", "callee") {
		t.Error("HasEdge(caller, callee) = false, want true (direct Call present in body)")
	}
	if g.HasEdge("callee", "caller") {
		t.Error("HasEdge(callee, caller) = true, want false")
	}
	callees := g.Callees("caller")
	if len(callees) != 1 || callees[0] != "callee" {
		t.Errorf("Callees(caller) = %v, want [callee] (CallIndirect excluded)", callees)
	}
	callers := g.Callers("callee")
	if len(callers) != 1 || callers[0] != "caller" {
		t.Errorf("Callers(callee) = %v, want [caller]", callers)
	}
}

func TestDeepHashEqualForStructurallyEqualSubtrees(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	sumA := b.Binary(ir.AddInt32, one, two, types.I32)

	oneB := b.Const(types.I32Lit(1))
	twoB := b.Const(types.I32Lit(2))
	sumB := b.Binary(ir.AddInt32, oneB, twoB, types.I32)

	if DeepHash(a, sumA) != DeepHash(a, sumB) {
		t.Error("DeepHash differs for structurally equal subtrees, want equal digests")
	}

	three := b.Const(types.I32Lit(3))
	sumC := b.Binary(ir.AddInt32, one, three, types.I32)
	if DeepHash(a, sumA) == DeepHash(a, sumC) {
		t.Error("DeepHash equal for structurally different subtrees, want distinct digests")
	}
}

func TestEvaluatorFoldsConstantArithmetic(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	one := b.Const(types.I32Lit(3))
	two := b.Const(types.I32Lit(4))
	sum := b.Binary(ir.AddInt32, one, two, types.I32)

	ev := NewEvaluator()
	lit, ok := ev.Fold(a, sum)
	if !ok {
		t.Fatal("Fold(3+4) = (_, false), want ok")
	}
	if lit.GetI32() != 7 {
		t.Errorf("Fold(3+4) = %d, want 7", lit.GetI32())
	}

	// A second fold of the same subtree must hit the memoization cache and
	// return the identical result.
	lit2, ok2 := ev.Fold(a, sum)
	if !ok2 || lit2.GetI32() != 7 {
		t.Errorf("second Fold(3+4) = (%v, %v), want (7, true)", lit2, ok2)
	}
}

func TestEvaluatorRefusesNonConstantSubtree(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	local := b.LocalGet(0, types.I32)
	one := b.Const(types.I32Lit(1))
	sum := b.Binary(ir.AddInt32, local, one, types.I32)

	ev := NewEvaluator()
	if _, ok := ev.Fold(a, sum); ok {
		t.Error("Fold(local+1) = (_, true), want false (local is not constant)")
	}
}

func TestMatcherAppliesFirstMatchingRuleInOrder(t *testing.T) {
	a := ir.NewArena()
	b := ir.NewBuilder(ir.NewModule(a))

	zero := b.Const(types.I32Lit(0))
	x := b.LocalGet(0, types.I32)
	addZero := b.Binary(ir.AddInt32, x, zero, types.I32)

	m := NewMatcher()
	m.Register(Rule{
		Name: "x+0=>x",
		Pattern: BinaryPattern{
			Op:    ir.AddInt32,
			Left:  VarPattern{Name: "x"},
			Right: ConstPattern{Literal: types.I32Lit(0)},
		},
		Rewrite: func(_ *ir.Arena, env *MatchEnv) (ir.ExprRef, bool) {
			r, ok := env.Lookup("x")
			return r, ok
		},
	})

	out, ok := m.Simplify(a, addZero)
	if !ok {
		t.Fatal("Simplify(x+0) = (_, false), want a rewrite")
	}
	if out != x {
		t.Errorf("Simplify(x+0) = %v, want %v (the bound x)", out, x)
	}

	// A shape the registered rule doesn't match declines to rewrite.
	mulX := b.Binary(ir.MulInt32, x, zero, types.I32)
	if _, ok := m.Simplify(a, mulX); ok {
		t.Error("Simplify(x*0) = (_, true), want false (no rule registered for Mul)")
	}
}

func TestBuildSSAViewPlacesPhiAtJoin(t *testing.T) {
	a, fn, cfg := buildDiamond(t)
	_ = fn
	dom := BuildDominanceTree(cfg)

	entry := cfg.Entry
	thenID, elseID := cfg.Blocks[entry].Succs[0], cfg.Blocks[entry].Succs[1]
	joinID := cfg.Blocks[thenID].Succs[0]

	// Manually wire one definition of local 1 into each arm of the diamond,
	// the shape that forces a phi at the join.
	b := ir.NewBuilder(ir.NewModule(a))
	setThen := b.LocalSet(1, b.Const(types.I32Lit(10)))
	setElse := b.LocalSet(1, b.Const(types.I32Lit(20)))
	cfg.Blocks[thenID].Exprs = append(cfg.Blocks[thenID].Exprs, setThen)
	cfg.Blocks[elseID].Exprs = append(cfg.Blocks[elseID].Exprs, setElse)

	ssa := BuildSSAView(a, &ir.Function{Params: []types.Type{types.I32}}, cfg, dom)

	phis := ssa.PhisAt(joinID)
	found := false
	for _, p := range phis {
		if p.Local == 1 {
			found = true
			if len(p.Values) != len(cfg.Blocks[joinID].Preds) {
				t.Errorf("phi.Values has %d entries, want one per pred (%d)", len(p.Values), len(cfg.Blocks[joinID].Preds))
			}
		}
	}
	if !found {
		t.Errorf("PhisAt(join) = %+v, want a phi for local 1", phis)
	}
}
