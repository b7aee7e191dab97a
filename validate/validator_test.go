// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package validate

import (
	"strings"
	"testing"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestValidateAcceptsWellFormedModule(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	one := b.Const(types.I32Lit(1))
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{one}})

	ok, err := Validate(m)
	if !ok || err != nil {
		t.Fatalf("Validate(well-formed) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestValidateFlagsBinaryOperandTypeMismatch(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	i32 := b.Const(types.I32Lit(1))
	i64 := b.Const(types.I64Lit(1))
	mismatch := b.Binary(ir.AddInt32, i32, i64, types.I32)
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{mismatch}})

	ok, err := Validate(m)
	if ok || err == nil {
		t.Fatal("Validate(operand type mismatch) = (true, nil), want a reported error")
	}
	if !strings.Contains(err.Error(), "operand type mismatch") {
		t.Errorf("error = %q, want it to mention the operand type mismatch", err.Error())
	}
}

func TestValidateFlagsSetOnImmutableGlobal(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	m.AddGlobal(&ir.Global{Name: "g", Type: types.I32, Mutable: false})
	one := b.Const(types.I32Lit(1))
	set := b.GlobalSet(0, one)
	m.AddFunction(&ir.Function{Name: "f", Body: []ir.ExprRef{set}})

	ok, err := Validate(m)
	if ok || err == nil {
		t.Fatal("Validate(set on immutable global) = (true, nil), want a reported error")
	}
	if !strings.Contains(err.Error(), "immutable global") {
		t.Errorf("error = %q, want it to mention the immutable global", err.Error())
	}
}

func TestValidateFlagsUnknownCallTarget(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	call := b.Call("missing", nil, false, types.None)
	m.AddFunction(&ir.Function{Name: "f", Body: []ir.ExprRef{call}})

	ok, err := Validate(m)
	if ok || err == nil {
		t.Fatal("Validate(call to unknown target) = (true, nil), want a reported error")
	}
	if !strings.Contains(err.Error(), "not present in module") {
		t.Errorf("error = %q, want it to mention the missing call target", err.Error())
	}
}

func TestValidateFlagsOutOfRangeExport(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	m.ExportFunction("missing", 3)

	ok, err := Validate(m)
	if ok || err == nil {
		t.Fatal("Validate(export of out-of-range function) = (true, nil), want a reported error")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error = %q, want it to mention the out-of-range index", err.Error())
	}
}

func TestMultiErrorErrReturnsNilWhenEmpty(t *testing.T) {
	m := &MultiError{}
	if err := m.Err(); err != nil {
		t.Errorf("Err() on empty MultiError = %v, want nil", err)
	}
}
