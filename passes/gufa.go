// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// GUFA ("globally useful function/global analysis") follows call edges
// through analysis.BuildUsage (no separate call graph object is built),
// runs whole-module reachability from the export/start/element roots, and
// then removes every function and global that reachability never touches —
// the module-wide cleanup a call graph alone cannot drive, since a function
// can be unreachable from any root while still being called by other
// unreachable functions.
type GUFA struct{}

// Name implements pass.Pass.
func (GUFA) Name() string { return pass.NameGUFA }

// Run implements pass.Pass.
func (p GUFA) Run(m *ir.Module) error {
	// analysis.BuildUsage already performs the call-graph traversal GUFA
	// needs (its worklist walk over Call/RefFunc edges from every export,
	// start-function and element-segment root), so there is no separate
	// call graph object to build here.
	usage := analysis.BuildUsage(m)

	oldToNew := make(map[uint32]uint32, len(m.Functions))
	kept := make([]*ir.Function, 0, len(m.Functions))
	for oldIdx, fn := range m.Functions {
		if !usage.LiveFuncs[fn.Name] {
			continue
		}
		oldToNew[uint32(oldIdx)] = uint32(len(kept))
		kept = append(kept, fn)
	}
	m.Functions = kept

	globalOldToNew := make(map[uint32]uint32, len(m.Globals))
	keptGlobals := make([]*ir.Global, 0, len(m.Globals))
	for oldIdx, g := range m.Globals {
		if !usage.LiveGlobals[uint32(oldIdx)] {
			continue
		}
		globalOldToNew[uint32(oldIdx)] = uint32(len(keptGlobals))
		keptGlobals = append(keptGlobals, g)
	}
	m.Globals = keptGlobals

	for i, exp := range m.Exports {
		switch exp.Kind {
		case ir.FunctionImport:
			if newIdx, ok := oldToNew[exp.Index]; ok {
				m.Exports[i].Index = newIdx
			}
		case ir.GlobalImport:
			if newIdx, ok := globalOldToNew[exp.Index]; ok {
				m.Exports[i].Index = newIdx
			}
		}
	}
	if m.HasStart {
		if newIdx, ok := oldToNew[m.Start]; ok {
			m.Start = newIdx
		}
	}
	for _, seg := range m.Elements {
		for i, idx := range seg.Funcs {
			if newIdx, ok := oldToNew[idx]; ok {
				seg.Funcs[i] = newIdx
			}
		}
	}
	remapGlobalRefs(m, globalOldToNew)
	return nil
}

func remapGlobalRefs(m *ir.Module, oldToNew map[uint32]uint32) {
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			remapGlobalRefsIn(m.Arena, r, oldToNew)
		}
	}
	for _, g := range m.Globals {
		if g.Init.Valid() {
			remapGlobalRefsIn(m.Arena, g.Init, oldToNew)
		}
	}
}

func remapGlobalRefsIn(arena *ir.Arena, r ir.ExprRef, oldToNew map[uint32]uint32) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	if e.Kind == ir.KindGlobalGet || e.Kind == ir.KindGlobalSet {
		if newIdx, ok := oldToNew[e.Index]; ok {
			e.Index = newIdx
		}
	}
	for _, c := range e.List {
		remapGlobalRefsIn(arena, c, oldToNew)
	}
	remapGlobalRefsIn(arena, e.A, oldToNew)
	remapGlobalRefsIn(arena, e.B, oldToNew)
	remapGlobalRefsIn(arena, e.C, oldToNew)
}
