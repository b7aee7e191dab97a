// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
)

// LocalCSE looks for a pure expression (Const, Unary, Binary, LocalGet, or
// GlobalGet — kinds with no possible side effect) that recurs, structurally
// identical, more than once within a single straight-line list (a
// function's top-level body or one Block's list; it does not reason across
// If/Loop branches, since doing so would need the dominance analysis this
// pass deliberately stays without). The first occurrence is wrapped in a
// LocalTee that stashes its value into a fresh local; every later
// occurrence becomes a LocalGet of that local.
type LocalCSE struct{}

// Name implements pass.Pass.
func (LocalCSE) Name() string { return pass.NameLocalCSE }

// Run implements pass.Pass.
func (p LocalCSE) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		cseList(m, fn, fn.Body)
	}
	return nil
}

func isPureCandidate(arena *ir.Arena, r ir.ExprRef) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	switch e.Kind {
	case ir.KindConst, ir.KindLocalGet, ir.KindGlobalGet:
		return true
	case ir.KindUnary:
		return isPureCandidate(arena, e.A)
	case ir.KindBinary:
		return isPureCandidate(arena, e.A) && isPureCandidate(arena, e.B)
	}
	return false
}

// cseList rewrites duplicate pure subexpressions within one straight-line
// list, then recurses into any nested Block's own list independently.
func cseList(m *ir.Module, fn *ir.Function, list []ir.ExprRef) {
	first := make(map[uint64]ir.ExprRef)
	b := ir.NewBuilder(m)

	for _, r := range list {
		if !r.Valid() {
			continue
		}
		e := m.Arena.Get(r)
		if e.Kind == ir.KindBlock {
			cseList(m, fn, e.List)
			continue
		}
		if !isPureCandidate(m.Arena, r) || e.Type == types.None {
			continue
		}

		h := analysis.DeepHash(m.Arena, r)
		firstRef, ok := first[h]
		if !ok {
			first[h] = r
			continue
		}
		if firstRef == r {
			continue
		}

		firstExpr := m.Arena.Get(firstRef)
		if firstExpr.Kind != ir.KindLocalTee {
			local := uint32(len(fn.Params) + len(fn.Vars))
			resultType := firstExpr.Type
			fn.Vars = append(fn.Vars, resultType)

			inner := b.DeepClone(firstRef)
			*m.Arena.Get(firstRef) = ir.Expression{
				Kind:  ir.KindLocalTee,
				Type:  resultType,
				Index: local,
				A:     inner,
			}
			firstExpr = m.Arena.Get(firstRef)
		}

		e.Kind = ir.KindLocalGet
		e.Type = firstExpr.Type
		e.Index = firstExpr.Index
		e.A, e.B, e.C, e.List = 0, 0, 0, nil
	}
}
