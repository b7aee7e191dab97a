// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ir

// Op enumerates the unary, binary, and atomic read-modify-write operators
// carried by Unary/Binary/AtomicRMW expressions.
type Op uint16

// Binary arithmetic, bitwise, and comparison operators.
const (
	OpNone Op = iota

	AddInt32
	SubInt32
	MulInt32
	DivSInt32
	DivUInt32
	RemSInt32
	RemUInt32
	AndInt32
	OrInt32
	XorInt32
	ShlInt32
	ShrSInt32
	ShrUInt32
	RotlInt32
	RotrInt32
	EqInt32
	NeInt32
	LtSInt32
	LtUInt32
	LeSInt32
	LeUInt32
	GtSInt32
	GtUInt32
	GeSInt32
	GeUInt32

	AddInt64
	SubInt64
	MulInt64
	DivSInt64
	DivUInt64
	RemSInt64
	RemUInt64
	AndInt64
	OrInt64
	XorInt64
	ShlInt64
	ShrSInt64
	ShrUInt64
	RotlInt64
	RotrInt64
	EqInt64
	NeInt64
	LtSInt64
	LtUInt64
	LeSInt64
	LeUInt64
	GtSInt64
	GtUInt64
	GeSInt64
	GeUInt64

	AddFloat32
	SubFloat32
	MulFloat32
	DivFloat32
	MinFloat32
	MaxFloat32
	CopySignFloat32
	EqFloat32
	NeFloat32
	LtFloat32
	LeFloat32
	GtFloat32
	GeFloat32

	AddFloat64
	SubFloat64
	MulFloat64
	DivFloat64
	MinFloat64
	MaxFloat64
	CopySignFloat64
	EqFloat64
	NeFloat64
	LtFloat64
	LeFloat64
	GtFloat64
	GeFloat64

	// Unary operators.
	EqZInt32
	EqZInt64
	ClzInt32
	CtzInt32
	PopcntInt32
	ClzInt64
	CtzInt64
	PopcntInt64
	NegFloat32
	AbsFloat32
	SqrtFloat32
	NegFloat64
	AbsFloat64
	SqrtFloat64

	// Conversions/reinterprets.
	WrapInt64ToInt32
	ExtendSInt32ToInt64
	ExtendUInt32ToInt64
	TruncSFloat32ToInt32
	TruncUFloat32ToInt32
	TruncSFloat64ToInt32
	TruncUFloat64ToInt32
	TruncSFloat32ToInt64
	TruncUFloat32ToInt64
	TruncSFloat64ToInt64
	TruncUFloat64ToInt64
	ConvertSInt32ToFloat32
	ConvertUInt32ToFloat32
	ConvertSInt64ToFloat32
	ConvertUInt64ToFloat32
	ConvertSInt32ToFloat64
	ConvertUInt32ToFloat64
	ConvertSInt64ToFloat64
	ConvertUInt64ToFloat64
	DemoteFloat64ToFloat32
	PromoteFloat32ToFloat64
	ReinterpretInt32AsFloat32
	ReinterpretFloat32AsInt32
	ReinterpretInt64AsFloat64
	ReinterpretFloat64AsInt64

	// Atomic read-modify-write kinds, used with KindAtomicRMW's Op field.
	AtomicRMWAdd
	AtomicRMWSub
	AtomicRMWAnd
	AtomicRMWOr
	AtomicRMWXor
	AtomicRMWXchg
)

// IsRelational reports whether op is a comparison operator. Used by the
// decompiler's IdentifyBooleans pass.
func (op Op) IsRelational() bool {
	switch op {
	case EqInt32, NeInt32, LtSInt32, LtUInt32, LeSInt32, LeUInt32, GtSInt32, GtUInt32, GeSInt32, GeUInt32,
		EqInt64, NeInt64, LtSInt64, LtUInt64, LeSInt64, LeUInt64, GtSInt64, GtUInt64, GeSInt64, GeUInt64,
		EqFloat32, NeFloat32, LtFloat32, LeFloat32, GtFloat32, GeFloat32,
		EqFloat64, NeFloat64, LtFloat64, LeFloat64, GtFloat64, GeFloat64,
		EqZInt32, EqZInt64:
		return true
	}
	return false
}

// IsCommutative reports whether swapping operands preserves the result.
func (op Op) IsCommutative() bool {
	switch op {
	case AddInt32, MulInt32, AndInt32, OrInt32, XorInt32,
		AddInt64, MulInt64, AndInt64, OrInt64, XorInt64,
		AddFloat32, MulFloat32, AddFloat64, MulFloat64,
		EqInt32, NeInt32, EqInt64, NeInt64:
		return true
	}
	return false
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "op(?)"
}

var opNames = map[Op]string{
	AddInt32: "i32.add", SubInt32: "i32.sub", MulInt32: "i32.mul",
	DivSInt32: "i32.div_s", DivUInt32: "i32.div_u", RemSInt32: "i32.rem_s", RemUInt32: "i32.rem_u",
	AndInt32: "i32.and", OrInt32: "i32.or", XorInt32: "i32.xor",
	ShlInt32: "i32.shl", ShrSInt32: "i32.shr_s", ShrUInt32: "i32.shr_u",
	RotlInt32: "i32.rotl", RotrInt32: "i32.rotr",
	EqInt32: "i32.eq", NeInt32: "i32.ne",
	LtSInt32: "i32.lt_s", LtUInt32: "i32.lt_u", LeSInt32: "i32.le_s", LeUInt32: "i32.le_u",
	GtSInt32: "i32.gt_s", GtUInt32: "i32.gt_u", GeSInt32: "i32.ge_s", GeUInt32: "i32.ge_u",

	AddInt64: "i64.add", SubInt64: "i64.sub", MulInt64: "i64.mul",
	DivSInt64: "i64.div_s", DivUInt64: "i64.div_u", RemSInt64: "i64.rem_s", RemUInt64: "i64.rem_u",
	AndInt64: "i64.and", OrInt64: "i64.or", XorInt64: "i64.xor",
	ShlInt64: "i64.shl", ShrSInt64: "i64.shr_s", ShrUInt64: "i64.shr_u",
	RotlInt64: "i64.rotl", RotrInt64: "i64.rotr",
	EqInt64: "i64.eq", NeInt64: "i64.ne",
	LtSInt64: "i64.lt_s", LtUInt64: "i64.lt_u", LeSInt64: "i64.le_s", LeUInt64: "i64.le_u",
	GtSInt64: "i64.gt_s", GtUInt64: "i64.gt_u", GeSInt64: "i64.ge_s", GeUInt64: "i64.ge_u",

	AddFloat32: "f32.add", SubFloat32: "f32.sub", MulFloat32: "f32.mul", DivFloat32: "f32.div",
	MinFloat32: "f32.min", MaxFloat32: "f32.max", CopySignFloat32: "f32.copysign",
	EqFloat32: "f32.eq", NeFloat32: "f32.ne", LtFloat32: "f32.lt", LeFloat32: "f32.le",
	GtFloat32: "f32.gt", GeFloat32: "f32.ge",

	AddFloat64: "f64.add", SubFloat64: "f64.sub", MulFloat64: "f64.mul", DivFloat64: "f64.div",
	MinFloat64: "f64.min", MaxFloat64: "f64.max", CopySignFloat64: "f64.copysign",
	EqFloat64: "f64.eq", NeFloat64: "f64.ne", LtFloat64: "f64.lt", LeFloat64: "f64.le",
	GtFloat64: "f64.gt", GeFloat64: "f64.ge",

	EqZInt32: "i32.eqz", EqZInt64: "i64.eqz",
	ClzInt32: "i32.clz", CtzInt32: "i32.ctz", PopcntInt32: "i32.popcnt",
	ClzInt64: "i64.clz", CtzInt64: "i64.ctz", PopcntInt64: "i64.popcnt",
	NegFloat32: "f32.neg", AbsFloat32: "f32.abs", SqrtFloat32: "f32.sqrt",
	NegFloat64: "f64.neg", AbsFloat64: "f64.abs", SqrtFloat64: "f64.sqrt",

	WrapInt64ToInt32:    "i32.wrap_i64",
	ExtendSInt32ToInt64: "i64.extend_i32_s",
	ExtendUInt32ToInt64: "i64.extend_i32_u",

	TruncSFloat32ToInt32: "i32.trunc_f32_s", TruncUFloat32ToInt32: "i32.trunc_f32_u",
	TruncSFloat64ToInt32: "i32.trunc_f64_s", TruncUFloat64ToInt32: "i32.trunc_f64_u",
	TruncSFloat32ToInt64: "i64.trunc_f32_s", TruncUFloat32ToInt64: "i64.trunc_f32_u",
	TruncSFloat64ToInt64: "i64.trunc_f64_s", TruncUFloat64ToInt64: "i64.trunc_f64_u",

	ConvertSInt32ToFloat32: "f32.convert_i32_s", ConvertUInt32ToFloat32: "f32.convert_i32_u",
	ConvertSInt64ToFloat32: "f32.convert_i64_s", ConvertUInt64ToFloat32: "f32.convert_i64_u",
	ConvertSInt32ToFloat64: "f64.convert_i32_s", ConvertUInt32ToFloat64: "f64.convert_i32_u",
	ConvertSInt64ToFloat64: "f64.convert_i64_s", ConvertUInt64ToFloat64: "f64.convert_i64_u",

	DemoteFloat64ToFloat32:    "f32.demote_f64",
	PromoteFloat32ToFloat64:   "f64.promote_f32",
	ReinterpretInt32AsFloat32: "f32.reinterpret_i32",
	ReinterpretFloat32AsInt32: "i32.reinterpret_f32",
	ReinterpretInt64AsFloat64: "f64.reinterpret_i64",
	ReinterpretFloat64AsInt64: "i64.reinterpret_f64",

	AtomicRMWAdd: "atomic.rmw.add", AtomicRMWSub: "atomic.rmw.sub", AtomicRMWAnd: "atomic.rmw.and",
	AtomicRMWOr: "atomic.rmw.or", AtomicRMWXor: "atomic.rmw.xor", AtomicRMWXchg: "atomic.rmw.xchg",
}
