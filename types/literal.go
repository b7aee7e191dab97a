// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import "fmt"

// LiteralKind tags which scalar variant a Literal holds.
type LiteralKind uint8

// Literal kinds, one per Wasm numeric value type.
const (
	LiteralI32 LiteralKind = iota
	LiteralI64
	LiteralF32
	LiteralF64
	LiteralV128
)

// Literal is a tagged constant value. Only the field matching Kind is valid;
// the Get* accessors panic on a variant mismatch.
type Literal struct {
	Kind LiteralKind
	i32  int32
	i64  int64
	f32  float32
	f64  float64
	v128 [16]byte
}

// I32Lit constructs an i32 Literal.
func I32Lit(v int32) Literal { return Literal{Kind: LiteralI32, i32: v} }

// I64Lit constructs an i64 Literal.
func I64Lit(v int64) Literal { return Literal{Kind: LiteralI64, i64: v} }

// F32Lit constructs an f32 Literal.
func F32Lit(v float32) Literal { return Literal{Kind: LiteralF32, f32: v} }

// F64Lit constructs an f64 Literal.
func F64Lit(v float64) Literal { return Literal{Kind: LiteralF64, f64: v} }

// V128Lit constructs a v128 Literal from 16 raw bytes.
func V128Lit(v [16]byte) Literal { return Literal{Kind: LiteralV128, v128: v} }

// GetType returns the value Type corresponding to the literal's Kind.
func (l Literal) GetType() Type {
	switch l.Kind {
	case LiteralI32:
		return I32
	case LiteralI64:
		return I64
	case LiteralF32:
		return F32
	case LiteralF64:
		return F64
	case LiteralV128:
		return V128
	default:
		panic(fmt.Sprintf("literal: unknown kind %d", l.Kind))
	}
}

func (l Literal) mustBe(k LiteralKind, name string) {
	if l.Kind != k {
		panic(fmt.Sprintf("literal: %s called on %v literal", name, l.Kind))
	}
}

// GetI32 returns the i32 value, panicking if Kind != LiteralI32.
func (l Literal) GetI32() int32 {
	l.mustBe(LiteralI32, "GetI32")
	return l.i32
}

// GetI64 returns the i64 value, panicking if Kind != LiteralI64.
func (l Literal) GetI64() int64 {
	l.mustBe(LiteralI64, "GetI64")
	return l.i64
}

// GetU32 returns the i32 value reinterpreted as unsigned.
func (l Literal) GetU32() uint32 {
	l.mustBe(LiteralI32, "GetU32")
	return uint32(l.i32)
}

// GetU64 returns the i64 value reinterpreted as unsigned.
func (l Literal) GetU64() uint64 {
	l.mustBe(LiteralI64, "GetU64")
	return uint64(l.i64)
}

// GetF32 returns the f32 value, panicking if Kind != LiteralF32.
func (l Literal) GetF32() float32 {
	l.mustBe(LiteralF32, "GetF32")
	return l.f32
}

// GetF64 returns the f64 value, panicking if Kind != LiteralF64.
func (l Literal) GetF64() float64 {
	l.mustBe(LiteralF64, "GetF64")
	return l.f64
}

// GetV128 returns the raw v128 bytes, panicking if Kind != LiteralV128.
func (l Literal) GetV128() [16]byte {
	l.mustBe(LiteralV128, "GetV128")
	return l.v128
}

// Negate returns the negation of l. Negation is defined for scalars only;
// calling it on a v128 literal panics.
func (l Literal) Negate() Literal {
	switch l.Kind {
	case LiteralI32:
		return I32Lit(-l.i32)
	case LiteralI64:
		return I64Lit(-l.i64)
	case LiteralF32:
		return F32Lit(-l.f32)
	case LiteralF64:
		return F64Lit(-l.f64)
	default:
		panic("literal: negate undefined for v128")
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case LiteralI32:
		return fmt.Sprintf("i32.const %d", l.i32)
	case LiteralI64:
		return fmt.Sprintf("i64.const %d", l.i64)
	case LiteralF32:
		return fmt.Sprintf("f32.const %v", l.f32)
	case LiteralF64:
		return fmt.Sprintf("f64.const %v", l.f64)
	case LiteralV128:
		return fmt.Sprintf("v128.const %x", l.v128)
	default:
		return "literal(?)"
	}
}

// Equal reports whether l and other hold the same kind and bit pattern.
func (l Literal) Equal(other Literal) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LiteralI32:
		return l.i32 == other.i32
	case LiteralI64:
		return l.i64 == other.i64
	case LiteralF32:
		return l.f32 == other.f32
	case LiteralF64:
		return l.f64 == other.f64
	case LiteralV128:
		return l.v128 == other.v128
	}
	return false
}
