// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// LICM (loop-invariant code motion) hoists a LocalSet out of a Loop when
// its value is a bare Const or GlobalGet (so it cannot depend on anything
// the loop body mutates) and nothing else in the loop body writes that
// same local (so the hoisted copy is the loop's only writer, and every
// LocalGet inside keeps observing the same value it would have recomputed
// every iteration). It only looks at the Loop's own top-level statement
// list, not nested Blocks or Ifs inside it, the dominance analysis a fully
// general LICM would need to hoist past a branch.
type LICM struct{}

// Name implements pass.Pass.
func (LICM) Name() string { return pass.NameLICM }

// Run implements pass.Pass.
func (p LICM) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		fn.Body = licmList(m, fn.Body)
	}
	return nil
}

func licmList(m *ir.Module, list []ir.ExprRef) []ir.ExprRef {
	out := make([]ir.ExprRef, 0, len(list))
	for _, r := range list {
		if !r.Valid() {
			out = append(out, r)
			continue
		}
		e := m.Arena.Get(r)
		switch e.Kind {
		case ir.KindBlock:
			e.List = licmList(m, e.List)
		case ir.KindLoop:
			if e.A.Valid() {
				if body := m.Arena.Get(e.A); body.Kind == ir.KindBlock {
					hoisted, kept := hoistInvariants(m.Arena, body.List)
					body.List = licmList(m, kept)
					out = append(out, hoisted...)
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// hoistInvariants splits list into statements safe to hoist above the loop
// (hoisted) and the rest (kept), preserving relative order within each.
func hoistInvariants(arena *ir.Arena, list []ir.ExprRef) (hoisted, kept []ir.ExprRef) {
	for _, r := range list {
		if !r.Valid() {
			kept = append(kept, r)
			continue
		}
		e := arena.Get(r)
		if e.Kind == ir.KindLocalSet && isLoopInvariantValue(arena, e.A) && soleWriter(arena, list, r, e.Index) {
			hoisted = append(hoisted, r)
			continue
		}
		kept = append(kept, r)
	}
	return hoisted, kept
}

func isLoopInvariantValue(arena *ir.Arena, r ir.ExprRef) bool {
	if !r.Valid() {
		return false
	}
	switch arena.Get(r).Kind {
	case ir.KindConst, ir.KindGlobalGet:
		return true
	}
	return false
}

// soleWriter reports whether no statement in list other than skip writes
// local idx.
func soleWriter(arena *ir.Arena, list []ir.ExprRef, skip ir.ExprRef, idx uint32) bool {
	for _, r := range list {
		if r == skip {
			continue
		}
		if setsLocal(arena, r, idx) {
			return false
		}
	}
	return true
}
