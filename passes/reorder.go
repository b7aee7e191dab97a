// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"sort"

	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// ReorderFunctions permutes the module's function list into descending
// call-frequency order (per analysis.Stats.FuncRefs), breaking ties by
// original index to stay deterministic, then remaps every reference to a
// function index throughout the module: exports, the start function,
// element-segment entries, and CallIndirect's implicit table reach is
// unaffected since calls address functions by name, not index.
type ReorderFunctions struct{}

// Name implements pass.Pass.
func (ReorderFunctions) Name() string { return pass.NameReorderFunctions }

// Run implements pass.Pass.
func (p ReorderFunctions) Run(m *ir.Module) error {
	stats := analysis.BuildStats(m)
	n := len(m.Functions)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		fi, fj := m.Functions[perm[i]], m.Functions[perm[j]]
		return stats.FuncRefs[fi.Name] > stats.FuncRefs[fj.Name]
	})

	oldToNew := make(map[uint32]uint32, n)
	reordered := make([]*ir.Function, n)
	for newIdx, oldIdx := range perm {
		oldToNew[uint32(oldIdx)] = uint32(newIdx)
		reordered[newIdx] = m.Functions[oldIdx]
	}
	m.Functions = reordered

	for i, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport {
			m.Exports[i].Index = oldToNew[exp.Index]
		}
	}
	if m.HasStart {
		m.Start = oldToNew[m.Start]
	}
	for _, seg := range m.Elements {
		for i, idx := range seg.Funcs {
			seg.Funcs[i] = oldToNew[idx]
		}
	}
	return nil
}

// ReorderGlobals permutes the module's global list into descending
// reference-frequency order and remaps every GlobalGet/GlobalSet index.
type ReorderGlobals struct{}

// Name implements pass.Pass.
func (ReorderGlobals) Name() string { return pass.NameReorderGlobals }

// Run implements pass.Pass.
func (p ReorderGlobals) Run(m *ir.Module) error {
	stats := analysis.BuildStats(m)
	n := len(m.Globals)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return stats.GlobalRefs[uint32(perm[i])] > stats.GlobalRefs[uint32(perm[j])]
	})

	oldToNew := make(map[uint32]uint32, n)
	reordered := make([]*ir.Global, n)
	for newIdx, oldIdx := range perm {
		oldToNew[uint32(oldIdx)] = uint32(newIdx)
		reordered[newIdx] = m.Globals[oldIdx]
	}
	m.Globals = reordered

	remap := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind == ir.KindGlobalGet || e.Kind == ir.KindGlobalSet {
			if newIdx, ok := oldToNew[e.Index]; ok {
				e.Index = newIdx
			}
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(remap, m.Arena, r)
		}
	}
	for _, g := range m.Globals {
		if g.Init.Valid() {
			visitor.Visit(remap, m.Arena, g.Init)
		}
	}
	return nil
}

// ReorderLocals permutes each function's own local list (params stay fixed
// at the front; only the variable tail is reordered) by descending
// within-function reference frequency, remapping that function's own
// LocalGet/Set/Tee indices.
type ReorderLocals struct{}

// Name implements pass.Pass.
func (ReorderLocals) Name() string { return pass.NameReorderLocals }

// Run implements pass.Pass.
func (p ReorderLocals) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		reorderFunctionLocals(m.Arena, fn)
	}
	return nil
}

func reorderFunctionLocals(arena *ir.Arena, fn *ir.Function) {
	nParams := len(fn.Params)
	nVars := len(fn.Vars)
	if nVars == 0 {
		return
	}

	counts := make([]int, nVars)
	tally := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		switch e.Kind {
		case ir.KindLocalGet, ir.KindLocalSet, ir.KindLocalTee:
			if int(e.Index) >= nParams {
				counts[int(e.Index)-nParams]++
			}
		}
	})
	for _, r := range fn.Body {
		visitor.Visit(tally, arena, r)
	}

	perm := make([]int, nVars)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return counts[perm[i]] > counts[perm[j]] })

	oldToNew := make(map[uint32]uint32, nVars)
	newVars := make([]types.Type, nVars)
	for newIdx, oldIdx := range perm {
		oldToNew[uint32(nParams+oldIdx)] = uint32(nParams + newIdx)
		newVars[newIdx] = fn.Vars[oldIdx]
	}
	fn.Vars = newVars

	remap := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		switch e.Kind {
		case ir.KindLocalGet, ir.KindLocalSet, ir.KindLocalTee:
			if newIdx, ok := oldToNew[e.Index]; ok {
				e.Index = newIdx
			}
		}
	})
	for _, r := range fn.Body {
		visitor.Visit(remap, arena, r)
	}
}
