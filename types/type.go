// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package types defines the canonical value and reference types shared by the
// IR, the pass framework, and the decompiler lifter, along with the
// process-wide TypeStore that interns function signatures and tuple types.
package types

import "fmt"

// Type is a compact, copyable handle identifying a Wasm value type. Basic
// types occupy a small fixed numeric range; signature and tuple handles are
// allocated from a disjoint range starting at signatureBase so that classifying
// a handle never requires a map lookup.
type Type uint32

const (
	basicBase     Type = 0
	signatureBase Type = 0x1000
	tupleBase     Type = 0x2000
	tupleLimit    Type = 0x3000
)

// Basic value and reference types. The first 256 IDs are reserved for basic
// types: a handle stays valid only as long as Store does.
const (
	None Type = basicBase + iota
	Unreachable
	I32
	I64
	F32
	F64
	V128
	FuncRef
	ExternRef
	// basicLimit marks the end of the reserved basic-type range.
	basicLimit = 256
)

// HeapType enumerates the targets a reference Type may point at.
type HeapType uint8

// Supported heap types.
const (
	HeapFunc HeapType = iota
	HeapExtern
	HeapAny
	HeapEq
	HeapI31
	HeapStruct
	HeapArray
	HeapNone
	HeapNoFunc
	HeapNoExtern
)

func (h HeapType) String() string {
	switch h {
	case HeapFunc:
		return "func"
	case HeapExtern:
		return "extern"
	case HeapAny:
		return "any"
	case HeapEq:
		return "eq"
	case HeapI31:
		return "i31"
	case HeapStruct:
		return "struct"
	case HeapArray:
		return "array"
	case HeapNone:
		return "none"
	case HeapNoFunc:
		return "nofunc"
	case HeapNoExtern:
		return "noextern"
	default:
		return fmt.Sprintf("heaptype(%d)", uint8(h))
	}
}

// RefType describes a nullable or non-null reference to a HeapType. It is
// carried alongside a Type rather than folded into the Type handle: the
// TypeStore interns only signatures and tuples, and no handle range is
// reserved for references. RefNull stores its HeapType directly on the
// expression.
type RefType struct {
	Heap     HeapType
	Nullable bool
}

// IsBasic reports whether t is one of the fixed basic types.
func (t Type) IsBasic() bool {
	return t < basicLimit
}

// IsSignature reports whether t was returned by InternSignature.
func (t Type) IsSignature() bool {
	return t >= signatureBase && t < tupleBase
}

// IsTuple reports whether t was returned by InternTuple.
func (t Type) IsTuple() bool {
	return t >= tupleBase && t < tupleLimit
}

// IsRef reports whether t is a reference-carrying basic type.
func (t Type) IsRef() bool {
	return t == FuncRef || t == ExternRef
}

// IsNullable reports whether a reference Type permits null. Only FuncRef and
// ExternRef are modeled as basic reference types here; both are nullable by
// default per the Wasm MVP reference-types proposal.
func (t Type) IsNullable() bool {
	return t.IsRef()
}

// SignatureID returns the interned signature id backing t, or false if t is
// not a signature handle.
func (t Type) SignatureID() (uint32, bool) {
	if !t.IsSignature() {
		return 0, false
	}
	return uint32(t - signatureBase), true
}

// TupleID returns the interned tuple id backing t, or false if t is not a
// tuple handle.
func (t Type) TupleID() (uint32, bool) {
	if !t.IsTuple() {
		return 0, false
	}
	return uint32(t - tupleBase), true
}

func fromSignatureID(id uint32) Type { return signatureBase + Type(id) }
func fromTupleID(id uint32) Type     { return tupleBase + Type(id) }

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Unreachable:
		return "unreachable"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case V128:
		return "v128"
	case FuncRef:
		return "funcref"
	case ExternRef:
		return "externref"
	}
	if t.IsSignature() {
		id, _ := t.SignatureID()
		return fmt.Sprintf("signature(%d)", id)
	}
	if t.IsTuple() {
		id, _ := t.TupleID()
		return fmt.Sprintf("tuple(%d)", id)
	}
	return fmt.Sprintf("type(%d)", uint32(t))
}

// Signature pairs a params Type with a results Type. Either may itself be a
// tuple handle, a basic type, or None (meaning zero params/results).
type Signature struct {
	Params  Type
	Results Type
}

func (s Signature) String() string {
	return fmt.Sprintf("(%v) -> %v", s.Params, s.Results)
}
