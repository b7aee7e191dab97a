// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
)

// MaxPrecomputePropagateIterations bounds PrecomputePropagate's fixpoint
// loop per function.
const MaxPrecomputePropagateIterations = 8

// PrecomputePropagate extends Precompute with a straight-line constant map
// for locals: a LocalSet/LocalTee of a constant records that local's value;
// any other LocalSet/LocalTee forgets it; a LocalGet of a known-constant
// local is replaced by that literal. Any control-flow construct (Block, If,
// Loop, Break, Switch, Call, CallIndirect) conservatively invalidates the
// entire map, since this pass does not track per-branch state.
type PrecomputePropagate struct{}

// Name implements pass.Pass.
func (PrecomputePropagate) Name() string { return pass.NamePrecomputePropagate }

// Run implements pass.Pass.
func (p PrecomputePropagate) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		for iter := 0; iter < MaxPrecomputePropagateIterations; iter++ {
			known := make(map[uint32]types.Literal)
			changed := false
			for _, r := range fn.Body {
				if propagateInto(m.Arena, r, known) {
					changed = true
				}
			}
			if !changed {
				break
			}
		}
	}
	return nil
}

// propagateInto walks r depth-first, threading a single straight-line
// constant map. It returns true if it rewrote anything.
func propagateInto(arena *ir.Arena, r ir.ExprRef, known map[uint32]types.Literal) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	changed := false

	switch e.Kind {
	case ir.KindLocalGet:
		if lit, ok := known[e.Index]; ok {
			*e = ir.Expression{Kind: ir.KindConst, Type: lit.GetType(), Literal: lit}
			changed = true
		}
		return changed

	case ir.KindLocalSet, ir.KindLocalTee:
		if propagateInto(arena, e.A, known) {
			changed = true
		}
		valExpr := arena.Get(e.A)
		if valExpr.Kind == ir.KindConst {
			known[e.Index] = valExpr.Literal
		} else {
			delete(known, e.Index)
		}
		return changed

	case ir.KindBlock:
		for _, c := range e.List {
			if propagateInto(arena, c, known) {
				changed = true
			}
		}
		clearLocals(known)
		return changed

	case ir.KindIf, ir.KindLoop, ir.KindBreak, ir.KindSwitch, ir.KindCall, ir.KindCallIndirect:
		for _, c := range []ir.ExprRef{e.A, e.B, e.C} {
			clearLocals(known)
			if propagateInto(arena, c, known) {
				changed = true
			}
		}
		for _, c := range e.List {
			clearLocals(known)
			if propagateInto(arena, c, known) {
				changed = true
			}
		}
		clearLocals(known)
		return changed

	default:
		for _, c := range e.List {
			if propagateInto(arena, c, known) {
				changed = true
			}
		}
		if propagateInto(arena, e.A, known) {
			changed = true
		}
		if propagateInto(arena, e.B, known) {
			changed = true
		}
		if propagateInto(arena, e.C, known) {
			changed = true
		}
		return changed
	}
}

func clearLocals(known map[uint32]types.Literal) {
	for k := range known {
		delete(known, k)
	}
}
