// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"testing"

	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestIdentifyBooleansMarksRelationalBinary(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	eq := b.Binary(ir.EqInt32, one, two, types.I32)
	add := b.Binary(ir.AddInt32, one, two, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Body: []ir.ExprRef{eq, add}})

	store := annotation.NewStore()
	IdentifyBooleans{}.Run(m, store)

	if rec := store.Get(eq); rec == nil || rec.HighLevelType != annotation.HighLevelBool {
		t.Errorf("eq's annotation = %+v, want HighLevelBool", rec)
	}
	if rec := store.Get(add); rec != nil && rec.HighLevelType == annotation.HighLevelBool {
		t.Errorf("add's annotation = %+v, want not HighLevelBool", rec)
	}
}

func TestIdentifyPointersMarksLoadBaseAndPropagatesThroughAdd(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	base := b.LocalGet(0, types.I32)
	offset := b.Const(types.I32Lit(4))
	addr := b.Binary(ir.AddInt32, base, offset, types.I32)
	load := b.Load(4, false, 0, 4, addr, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{load}})

	store := annotation.NewStore()
	IdentifyPointers{}.Run(m, store)

	if rec := store.Get(addr); rec == nil || rec.HighLevelType != annotation.HighLevelPointer {
		t.Errorf("addr's annotation = %+v, want HighLevelPointer", rec)
	}
	if rec := store.Get(base); rec == nil || rec.VariableRole != annotation.RoleBasePointer {
		t.Errorf("base local's annotation = %+v, want RoleBasePointer", rec)
	}
}

func TestLiftRunsEveryPassAndAssignsAnnotations(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	one := b.Const(types.I32Lit(1))
	two := b.Const(types.I32Lit(2))
	eq := b.Binary(ir.EqInt32, one, two, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{eq}})

	store := Lift(m)
	if m.Annotations == nil {
		t.Fatal("Lift did not assign m.Annotations")
	}
	if store.Get(eq) == nil {
		t.Error("Lift's IdentifyBooleans pass did not annotate the relational expression")
	}
}
