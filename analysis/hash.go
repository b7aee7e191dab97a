// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

// DeepHash computes a structural digest of the subtree rooted at r: the
// kind discriminant, cached type, and kind-specific payload (integer/float
// bit patterns for constants, local/global indices, block/break names, call
// target and is_return flag, op enums), recursing into children in
// canonical order. Equal subtrees
// produce equal digests; used by DuplicateFunctionElimination and LocalCSE.
func DeepHash(arena *ir.Arena, r ir.ExprRef) uint64 {
	h := xxhash.New()
	hashInto(h, arena, r)
	return h.Sum64()
}

// DeepHashBody hashes an ordered list of top-level statements (a function
// body), for comparing whole functions.
func DeepHashBody(arena *ir.Arena, body []ir.ExprRef) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(body)))
	_, _ = h.Write(buf[:])
	for _, r := range body {
		hashInto(h, arena, r)
	}
	return h.Sum64()
}

func hashInto(h *xxhash.Digest, arena *ir.Arena, r ir.ExprRef) {
	var buf [8]byte
	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putStr := func(s string) {
		putU64(uint64(len(s)))
		_, _ = h.Write([]byte(s))
	}

	if !r.Valid() {
		putU64(0xFFFFFFFFFFFFFFFF) // sentinel for "absent child"
		return
	}

	e := arena.Get(r)
	putU64(uint64(e.Kind))
	putU64(uint64(e.Type))
	putU64(uint64(e.Op))
	putU64(uint64(e.Index))
	putU64(uint64(e.TableIdx))
	putU64(uint64(e.TypeArg))
	putU64(uint64(e.Heap))
	putU64(uint64(e.Offset))
	putU64(uint64(e.Align))
	putU64(uint64(e.Bytes))
	if e.Signed {
		putU64(1)
	} else {
		putU64(0)
	}
	if e.IsReturn {
		putU64(1)
	} else {
		putU64(0)
	}
	putStr(e.Name)
	putStr(e.Delegate)

	if e.Kind == ir.KindConst {
		switch e.Literal.Kind {
		case types.LiteralI32:
			putU64(uint64(uint32(e.Literal.GetI32())))
		case types.LiteralI64:
			putU64(e.Literal.GetU64())
		case types.LiteralF32:
			putU64(uint64(math.Float32bits(e.Literal.GetF32())))
		case types.LiteralF64:
			putU64(math.Float64bits(e.Literal.GetF64()))
		case types.LiteralV128:
			v := e.Literal.GetV128()
			_, _ = h.Write(v[:])
		}
	}

	putU64(uint64(len(e.List)))
	for _, c := range e.List {
		hashInto(h, arena, c)
	}
	hashInto(h, arena, e.A)
	hashInto(h, arena, e.B)
	hashInto(h, arena, e.C)
}
