// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ir

import (
	"testing"

	"github.com/mavity/wasmrewire/types"
)

func TestArenaGetPanicsOnInvalidRef(t *testing.T) {
	a := NewArena()
	b := NewBuilder(NewModule(a))
	b.Const(types.I32Lit(1))

	defer func() {
		if recover() == nil {
			t.Fatal("Get(0) did not panic on the reserved sentinel ref")
		}
	}()
	a.Get(0)
}

func TestExprRefValid(t *testing.T) {
	if ExprRef(0).Valid() {
		t.Error("ExprRef(0).Valid() = true, want false (reserved sentinel)")
	}
	if !ExprRef(1).Valid() {
		t.Error("ExprRef(1).Valid() = false, want true")
	}
}

func TestConstCachedTypeMatchesLiteral(t *testing.T) {
	a := NewArena()
	b := NewBuilder(NewModule(a))
	lit := types.I32Lit(42)
	r := b.Const(lit)

	e := a.Get(r)
	if e.Type != lit.GetType() {
		t.Errorf("cached Type = %v, want %v", e.Type, lit.GetType())
	}
	if !e.Literal.Equal(lit) {
		t.Errorf("cached Literal = %v, want %v", e.Literal, lit)
	}
}

func TestDeepCloneIsStructurallyEqualButDisjoint(t *testing.T) {
	a := NewArena()
	b := NewBuilder(NewModule(a))

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	sum := b.Binary(AddInt32, one, two, types.I32)

	clone := b.DeepClone(sum)
	if clone == sum {
		t.Fatalf("DeepClone returned the same ExprRef %v, want a disjoint one", sum)
	}

	origE, cloneE := a.Get(sum), a.Get(clone)
	if origE.Kind != cloneE.Kind || origE.Op != cloneE.Op || origE.Type != cloneE.Type {
		t.Fatalf("clone's own node differs from original: %+v vs %+v", cloneE, origE)
	}
	if cloneE.A == origE.A || cloneE.B == origE.B {
		t.Fatalf("clone shares a child ExprRef with the original: clone=%+v orig=%+v", cloneE, origE)
	}

	origA, cloneA := a.Get(origE.A), a.Get(cloneE.A)
	if origA.Literal.GetI32() != cloneA.Literal.GetI32() {
		t.Errorf("cloned left child literal = %d, want %d", cloneA.Literal.GetI32(), origA.Literal.GetI32())
	}
}

func TestFunctionLocalType(t *testing.T) {
	fn := &Function{
		Params: []types.Type{types.I32, types.F64},
		Vars:   []types.Type{types.I64},
	}
	if fn.NumLocals() != 3 {
		t.Fatalf("NumLocals() = %d, want 3", fn.NumLocals())
	}
	if got := fn.LocalType(0); got != types.I32 {
		t.Errorf("LocalType(0) = %v, want I32", got)
	}
	if got := fn.LocalType(1); got != types.F64 {
		t.Errorf("LocalType(1) = %v, want F64", got)
	}
	if got := fn.LocalType(2); got != types.I64 {
		t.Errorf("LocalType(2) = %v, want I64 (first Vars entry)", got)
	}
}

func TestFeatureSetHas(t *testing.T) {
	fs := FeatureSignExt | FeatureMutableGlobals
	if !fs.Has(FeatureSignExt) {
		t.Error("Has(FeatureSignExt) = false, want true")
	}
	if fs.Has(FeatureThreads) {
		t.Error("Has(FeatureThreads) = true, want false")
	}
	if !fs.Has(FeatureSignExt | FeatureMutableGlobals) {
		t.Error("Has(both bits) = false, want true")
	}
}

func TestModuleGetFunctionIndex(t *testing.T) {
	m := NewModule(NewArena())
	m.AddFunction(&Function{Name: "a"})
	idx := m.AddFunction(&Function{Name: "b"})

	got, ok := m.GetFunctionIndex("b")
	if !ok || got != idx {
		t.Fatalf("GetFunctionIndex(%q) = (%d, %v), want (%d, true)", "b", got, ok, idx)
	}
	if _, ok := m.GetFunctionIndex("missing"); ok {
		t.Error("GetFunctionIndex(missing) = (_, true), want false")
	}
}
