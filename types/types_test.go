// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import "testing"

func TestInternSignatureIsIdempotent(t *testing.T) {
	store := newTypeStore()
	a := store.InternSignature(I32, F64)
	b := store.InternSignature(I32, F64)
	if a != b {
		t.Fatalf("InternSignature(I32, F64) returned %v then %v, want equal handles", a, b)
	}

	sig, ok := store.LookupSignature(a)
	if !ok {
		t.Fatalf("LookupSignature(%v) = (_, false), want true", a)
	}
	if sig.Params != I32 || sig.Results != F64 {
		t.Fatalf("LookupSignature(%v) = %+v, want {I32 F64}", a, sig)
	}
}

func TestLookupSignatureOnBasicTypeFails(t *testing.T) {
	store := newTypeStore()
	for _, basic := range []Type{None, Unreachable, I32, I64, F32, F64, V128, FuncRef, ExternRef} {
		if _, ok := store.LookupSignature(basic); ok {
			t.Errorf("LookupSignature(%v) = (_, true), want false for a basic type", basic)
		}
	}
}

func TestInternTupleSpecialCases(t *testing.T) {
	store := newTypeStore()

	if got := store.InternTuple(nil); got != None {
		t.Errorf("InternTuple(nil) = %v, want None", got)
	}
	if got := store.InternTuple([]Type{I64}); got != I64 {
		t.Errorf("InternTuple([I64]) = %v, want I64 unchanged", got)
	}

	a := store.InternTuple([]Type{I32, I64, F32})
	b := store.InternTuple([]Type{I32, I64, F32})
	if a != b {
		t.Fatalf("InternTuple with equal elements returned %v then %v, want equal handles", a, b)
	}
	if !a.IsTuple() {
		t.Fatalf("InternTuple of 3 elements returned %v, want a tuple handle", a)
	}

	elems, ok := store.LookupTuple(a)
	if !ok {
		t.Fatalf("LookupTuple(%v) = (_, false), want true", a)
	}
	want := []Type{I32, I64, F32}
	if len(elems) != len(want) {
		t.Fatalf("LookupTuple(%v) = %v, want %v", a, elems, want)
	}
	for i := range want {
		if elems[i] != want[i] {
			t.Errorf("LookupTuple(%v)[%d] = %v, want %v", a, i, elems[i], want[i])
		}
	}
}

func TestInternTupleDistinctForDifferentElements(t *testing.T) {
	store := newTypeStore()
	a := store.InternTuple([]Type{I32, I64})
	b := store.InternTuple([]Type{I64, I32})
	if a == b {
		t.Fatalf("InternTuple([I32,I64]) == InternTuple([I64,I32]) = %v, want distinct handles (order matters)", a)
	}
}

func TestLiteralGetTypeMatchesKind(t *testing.T) {
	cases := []struct {
		lit  Literal
		want Type
	}{
		{I32Lit(1), I32},
		{I64Lit(1), I64},
		{F32Lit(1), F32},
		{F64Lit(1), F64},
		{V128Lit([16]byte{}), V128},
	}
	for _, c := range cases {
		if got := c.lit.GetType(); got != c.want {
			t.Errorf("%+v.GetType() = %v, want %v", c.lit, got, c.want)
		}
	}
}

func TestLiteralAccessorMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("GetI32 on an i64 literal did not panic")
		}
	}()
	I64Lit(1).GetI32()
}

func TestLiteralNegate(t *testing.T) {
	if got := I32Lit(5).Negate().GetI32(); got != -5 {
		t.Errorf("I32Lit(5).Negate().GetI32() = %d, want -5", got)
	}
	if got := F64Lit(2.5).Negate().GetF64(); got != -2.5 {
		t.Errorf("F64Lit(2.5).Negate().GetF64() = %v, want -2.5", got)
	}
}

func TestLiteralNegateV128Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Negate on a v128 literal did not panic")
		}
	}()
	V128Lit([16]byte{}).Negate()
}

func TestLiteralEqual(t *testing.T) {
	if !I32Lit(7).Equal(I32Lit(7)) {
		t.Error("I32Lit(7).Equal(I32Lit(7)) = false, want true")
	}
	if I32Lit(7).Equal(I64Lit(7)) {
		t.Error("I32Lit(7).Equal(I64Lit(7)) = true, want false (different kinds)")
	}
	if I32Lit(7).Equal(I32Lit(8)) {
		t.Error("I32Lit(7).Equal(I32Lit(8)) = true, want false (different values)")
	}
}
