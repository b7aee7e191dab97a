// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

// Evaluator folds constant-only expression subtrees into a single literal.
// It never folds an operation that would trap (integer division or rem by
// zero, float-to-int conversions out of range) and never folds a float
// operation whose result is not bit-for-bit reproducible across platforms.
// Memoization is per-Evaluator and keyed by the subtree's deep hash, so
// repeated folding attempts over the same shared subtree (e.g. during a
// fixpoint pass) do only the work once.
type Evaluator struct {
	cache *lru.Cache[uint64, foldResult]
}

type foldResult struct {
	lit types.Literal
	ok  bool
}

// DefaultEvaluatorCacheSize bounds the memoization table so a pass over a
// pathologically large module cannot grow it unbounded.
const DefaultEvaluatorCacheSize = 4096

// NewEvaluator returns an Evaluator with the default cache size.
func NewEvaluator() *Evaluator {
	c, err := lru.New[uint64, foldResult](DefaultEvaluatorCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, which is a programmer error
	}
	return &Evaluator{cache: c}
}

// Fold attempts to reduce r to a single constant Literal. It returns
// ok=false if r is not a constant-only subtree or folding it would require
// an operation this Evaluator refuses to perform.
func (ev *Evaluator) Fold(arena *ir.Arena, r ir.ExprRef) (types.Literal, bool) {
	if !r.Valid() {
		return types.Literal{}, false
	}
	key := DeepHash(arena, r)
	if cached, ok := ev.cache.Get(key); ok {
		return cached.lit, cached.ok
	}
	lit, ok := ev.fold(arena, r)
	ev.cache.Add(key, foldResult{lit: lit, ok: ok})
	return lit, ok
}

func (ev *Evaluator) fold(arena *ir.Arena, r ir.ExprRef) (types.Literal, bool) {
	e := arena.Get(r)
	switch e.Kind {
	case ir.KindConst:
		return e.Literal, true
	case ir.KindUnary:
		sub, ok := ev.Fold(arena, e.A)
		if !ok {
			return types.Literal{}, false
		}
		return foldUnary(e.Op, sub)
	case ir.KindBinary:
		left, ok := ev.Fold(arena, e.A)
		if !ok {
			return types.Literal{}, false
		}
		right, ok := ev.Fold(arena, e.B)
		if !ok {
			return types.Literal{}, false
		}
		return foldBinary(e.Op, left, right)
	default:
		return types.Literal{}, false
	}
}

func foldUnary(op ir.Op, v types.Literal) (types.Literal, bool) {
	switch op {
	case ir.EqZInt32:
		b := int32(0)
		if v.GetI32() == 0 {
			b = 1
		}
		return types.I32Lit(b), true
	case ir.EqZInt64:
		b := int32(0)
		if v.GetI64() == 0 {
			b = 1
		}
		return types.I32Lit(b), true
	case ir.ClzInt32:
		return types.I32Lit(int32(leadingZeros32(v.GetU32()))), true
	case ir.CtzInt32:
		return types.I32Lit(int32(trailingZeros32(v.GetU32()))), true
	case ir.PopcntInt32:
		return types.I32Lit(int32(popcount32(v.GetU32()))), true
	case ir.ClzInt64:
		return types.I64Lit(int64(leadingZeros64(v.GetU64()))), true
	case ir.CtzInt64:
		return types.I64Lit(int64(trailingZeros64(v.GetU64()))), true
	case ir.PopcntInt64:
		return types.I64Lit(int64(popcount64(v.GetU64()))), true
	case ir.NegFloat32:
		return types.F32Lit(-v.GetF32()), true
	case ir.AbsFloat32:
		return types.F32Lit(float32(math.Abs(float64(v.GetF32())))), true
	case ir.NegFloat64:
		return types.F64Lit(-v.GetF64()), true
	case ir.AbsFloat64:
		return types.F64Lit(math.Abs(v.GetF64())), true
	// Sqrt, truncating conversions, and reinterprets are deliberately not
	// folded: sqrt's rounding and conversions' trap-on-overflow behavior are
	// exactly the surprising cases worth leaving for the runtime to execute.
	default:
		return types.Literal{}, false
	}
}

func foldBinary(op ir.Op, a, b types.Literal) (types.Literal, bool) {
	switch op {
	case ir.AddInt32:
		return types.I32Lit(a.GetI32() + b.GetI32()), true
	case ir.SubInt32:
		return types.I32Lit(a.GetI32() - b.GetI32()), true
	case ir.MulInt32:
		return types.I32Lit(a.GetI32() * b.GetI32()), true
	case ir.AndInt32:
		return types.I32Lit(int32(a.GetU32() & b.GetU32())), true
	case ir.OrInt32:
		return types.I32Lit(int32(a.GetU32() | b.GetU32())), true
	case ir.XorInt32:
		return types.I32Lit(int32(a.GetU32() ^ b.GetU32())), true
	case ir.ShlInt32:
		return types.I32Lit(int32(a.GetU32() << (b.GetU32() & 31))), true
	case ir.ShrUInt32:
		return types.I32Lit(int32(a.GetU32() >> (b.GetU32() & 31))), true
	case ir.ShrSInt32:
		return types.I32Lit(a.GetI32() >> (b.GetU32() & 31)), true
	case ir.EqInt32:
		return boolLit(a.GetI32() == b.GetI32()), true
	case ir.NeInt32:
		return boolLit(a.GetI32() != b.GetI32()), true
	case ir.LtSInt32:
		return boolLit(a.GetI32() < b.GetI32()), true
	case ir.LtUInt32:
		return boolLit(a.GetU32() < b.GetU32()), true
	case ir.LeSInt32:
		return boolLit(a.GetI32() <= b.GetI32()), true
	case ir.LeUInt32:
		return boolLit(a.GetU32() <= b.GetU32()), true
	case ir.GtSInt32:
		return boolLit(a.GetI32() > b.GetI32()), true
	case ir.GtUInt32:
		return boolLit(a.GetU32() > b.GetU32()), true
	case ir.GeSInt32:
		return boolLit(a.GetI32() >= b.GetI32()), true
	case ir.GeUInt32:
		return boolLit(a.GetU32() >= b.GetU32()), true

	case ir.AddInt64:
		return types.I64Lit(a.GetI64() + b.GetI64()), true
	case ir.SubInt64:
		return types.I64Lit(a.GetI64() - b.GetI64()), true
	case ir.MulInt64:
		return types.I64Lit(a.GetI64() * b.GetI64()), true
	case ir.AndInt64:
		return types.I64Lit(int64(a.GetU64() & b.GetU64())), true
	case ir.OrInt64:
		return types.I64Lit(int64(a.GetU64() | b.GetU64())), true
	case ir.XorInt64:
		return types.I64Lit(int64(a.GetU64() ^ b.GetU64())), true
	case ir.ShlInt64:
		return types.I64Lit(int64(a.GetU64() << (b.GetU64() & 63))), true
	case ir.ShrUInt64:
		return types.I64Lit(int64(a.GetU64() >> (b.GetU64() & 63))), true
	case ir.ShrSInt64:
		return types.I64Lit(a.GetI64() >> (b.GetU64() & 63)), true
	case ir.EqInt64:
		return boolLit(a.GetI64() == b.GetI64()), true
	case ir.NeInt64:
		return boolLit(a.GetI64() != b.GetI64()), true
	case ir.LtSInt64:
		return boolLit(a.GetI64() < b.GetI64()), true
	case ir.LtUInt64:
		return boolLit(a.GetU64() < b.GetU64()), true
	case ir.GeSInt64:
		return boolLit(a.GetI64() >= b.GetI64()), true
	case ir.GeUInt64:
		return boolLit(a.GetU64() >= b.GetU64()), true

	case ir.AddFloat32:
		return types.F32Lit(a.GetF32() + b.GetF32()), true
	case ir.SubFloat32:
		return types.F32Lit(a.GetF32() - b.GetF32()), true
	case ir.MulFloat32:
		return types.F32Lit(a.GetF32() * b.GetF32()), true
	case ir.AddFloat64:
		return types.F64Lit(a.GetF64() + b.GetF64()), true
	case ir.SubFloat64:
		return types.F64Lit(a.GetF64() - b.GetF64()), true
	case ir.MulFloat64:
		return types.F64Lit(a.GetF64() * b.GetF64()), true

	// Integer division/remainder are never folded: a zero divisor traps at runtime,
	// and an evaluator that folds only the non-trapping cases would make
	// optimization output depend on the divisor's concrete value in a way
	// readers wouldn't expect from a "constant fold". DivFloat32/64 are
	// folded: float division by zero produces Inf/NaN rather than trapping.
	case ir.DivFloat32:
		return types.F32Lit(a.GetF32() / b.GetF32()), true
	case ir.DivFloat64:
		return types.F64Lit(a.GetF64() / b.GetF64()), true

	default:
		return types.Literal{}, false
	}
}

func boolLit(b bool) types.Literal {
	if b {
		return types.I32Lit(1)
	}
	return types.I32Lit(0)
}

func leadingZeros32(v uint32) int {
	n := 0
	for i := 31; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			break
		}
		n++
	}
	return n
}

func trailingZeros32(v uint32) int {
	if v == 0 {
		return 32
	}
	n := 0
	for v&1 == 0 {
		v >>= 1
		n++
	}
	return n
}

func popcount32(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func leadingZeros64(v uint64) int {
	n := 0
	for i := 63; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			break
		}
		n++
	}
	return n
}

func trailingZeros64(v uint64) int {
	if v == 0 {
		return 64
	}
	n := 0
	for v&1 == 0 {
		v >>= 1
		n++
	}
	return n
}

func popcount64(v uint64) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}
