// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// TypeSSA builds a CFG, dominator tree, and minimal SSA view per function,
// then for every local with exactly one reaching definition (no phi,
// meaning that single def dominates every use of the local) checks whether
// the def's value type strictly narrows the cached Type already recorded on
// each LocalGet use. Locals with more than one def are left untouched: a
// true join-point refinement needs the LUB across all converging defs,
// which LocalSubtyping already computes at the whole-function level, so
// there is nothing left for this pass to add there.
type TypeSSA struct{}

// Name implements pass.Pass.
func (TypeSSA) Name() string { return pass.NameTypeSSA }

// Run implements pass.Pass.
func (p TypeSSA) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		refineFunctionTypeSSA(m.Arena, fn)
	}
	return nil
}

func refineFunctionTypeSSA(arena *ir.Arena, fn *ir.Function) {
	cfg := analysis.BuildCFG(arena, fn)
	dom := analysis.BuildDominanceTree(cfg)
	ssa := analysis.BuildSSAView(arena, fn, cfg, dom)

	singleDefType := make(map[uint32]ir.ExprRef)
	for local, defs := range ssa.Defs {
		if len(defs) != 1 || !defs[0].Write.Valid() {
			continue
		}
		if len(ssa.PhisAt(defs[0].Block)) > 0 {
			continue
		}
		singleDefType[local] = defs[0].Write
	}
	if len(singleDefType) == 0 {
		return
	}

	fixup := visitor.Func(func(a *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindLocalGet {
			return
		}
		defRef, ok := singleDefType[e.Index]
		if !ok {
			return
		}
		defType := a.Get(a.Get(defRef).A).Type
		if defType != e.Type {
			e.Type = defType
		}
	})
	for _, r := range fn.Body {
		visitor.Visit(fixup, arena, r)
	}
}
