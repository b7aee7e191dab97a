// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// MergeLocals collapses a local that exists only to hold a copy of another
// local's value. Within a straight-line list, a LocalSet{a, v} immediately
// followed by LocalSet{b, LocalGet{a}} means b starts out as a's value; if
// neither a nor b is ever written again anywhere later in the same list,
// every later LocalGet{b} can read a directly instead, and the copy becomes
// dead. Later statements are searched in full, nested Blocks and branches
// included: a write to a or b anywhere in them blocks the merge, and every
// LocalGet{b} in them is rewritten.
type MergeLocals struct{}

// Name implements pass.Pass.
func (MergeLocals) Name() string { return pass.NameMergeLocals }

// Run implements pass.Pass.
func (p MergeLocals) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		mergeLocalsList(m, fn.Body)
	}
	return nil
}

func mergeLocalsList(m *ir.Module, list []ir.ExprRef) {
	for i := 0; i < len(list); i++ {
		if !list[i].Valid() {
			continue
		}
		e := m.Arena.Get(list[i])
		if e.Kind == ir.KindBlock {
			mergeLocalsList(m, e.List)
			continue
		}
		if e.Kind != ir.KindLocalSet || i+1 >= len(list) || !list[i+1].Valid() {
			continue
		}
		a := e.Index
		next := m.Arena.Get(list[i+1])
		if next.Kind != ir.KindLocalSet || !next.A.Valid() {
			continue
		}
		copyOf := m.Arena.Get(next.A)
		if copyOf.Kind != ir.KindLocalGet || copyOf.Index != a {
			continue
		}
		b := next.Index
		if b == a || setsLocalAnywhere(m.Arena, list[i+1:], a) || setsLocalAnywhere(m.Arena, list[i+2:], b) {
			continue
		}

		for _, r := range list[i+2:] {
			renameLocal(m.Arena, r, b, a)
		}
		*next = ir.Expression{Kind: ir.KindNop}
	}
}

// setsLocalAnywhere reports whether any statement in list contains a
// LocalSet or LocalTee to idx.
func setsLocalAnywhere(arena *ir.Arena, list []ir.ExprRef, idx uint32) bool {
	for _, r := range list {
		if setsLocal(arena, r, idx) {
			return true
		}
	}
	return false
}

func setsLocal(arena *ir.Arena, r ir.ExprRef, idx uint32) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	if (e.Kind == ir.KindLocalSet || e.Kind == ir.KindLocalTee) && e.Index == idx {
		return true
	}
	for _, c := range e.List {
		if setsLocal(arena, c, idx) {
			return true
		}
	}
	return setsLocal(arena, e.A, idx) || setsLocal(arena, e.B, idx) || setsLocal(arena, e.C, idx)
}

// renameLocal rewrites every LocalGet{from} in the subtree rooted at r to
// LocalGet{to}.
func renameLocal(arena *ir.Arena, r ir.ExprRef, from, to uint32) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	if e.Kind == ir.KindLocalGet && e.Index == from {
		e.Index = to
	}
	for _, c := range e.List {
		renameLocal(arena, c, from, to)
	}
	renameLocal(arena, e.A, from, to)
	renameLocal(arena, e.B, from, to)
	renameLocal(arena, e.C, from, to)
}
