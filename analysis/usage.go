// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// Usage is a reachability result: the transitive live set of functions and
// globals reachable from exported functions, the start function, and
// element-segment entries, plus whether memories/tables are touched and
// which data/element segments see any use.
type Usage struct {
	LiveFuncs    map[string]bool
	LiveGlobals  map[uint32]bool
	MemoryUsed   map[uint32]bool
	TableUsed    map[uint32]bool
	DataUsed     map[int]bool
	ElementsUsed map[int]bool
}

// BuildUsage computes reachability for m.
func BuildUsage(m *ir.Module) *Usage {
	u := &Usage{
		LiveFuncs:    make(map[string]bool),
		LiveGlobals:  make(map[uint32]bool),
		MemoryUsed:   make(map[uint32]bool),
		TableUsed:    make(map[uint32]bool),
		DataUsed:     make(map[int]bool),
		ElementsUsed: make(map[int]bool),
	}

	var seeds []string
	for _, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport && int(exp.Index) < len(m.Functions) {
			seeds = append(seeds, m.Functions[exp.Index].Name)
		}
	}
	if m.HasStart && int(m.Start) < len(m.Functions) {
		seeds = append(seeds, m.Functions[m.Start].Name)
	}
	for i, seg := range m.Elements {
		if len(seg.Funcs) > 0 {
			u.ElementsUsed[i] = true
		}
		for _, idx := range seg.Funcs {
			if int(idx) < len(m.Functions) {
				seeds = append(seeds, m.Functions[idx].Name)
			}
		}
	}

	byName := make(map[string]*ir.Function, len(m.Functions))
	for _, fn := range m.Functions {
		byName[fn.Name] = fn
	}

	worklist := append([]string{}, seeds...)
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if u.LiveFuncs[name] {
			continue
		}
		u.LiveFuncs[name] = true
		fn, ok := byName[name]
		if !ok || fn.Body == nil {
			continue
		}
		for _, r := range fn.Body {
			visitor.Visit(visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
				switch e.Kind {
				case ir.KindCall, ir.KindRefFunc:
					if !u.LiveFuncs[e.Name] {
						worklist = append(worklist, e.Name)
					}
				case ir.KindGlobalGet, ir.KindGlobalSet:
					u.LiveGlobals[e.Index] = true
				case ir.KindLoad, ir.KindStore, ir.KindMemorySize, ir.KindMemoryGrow,
					ir.KindMemoryInit, ir.KindMemoryFill, ir.KindMemoryCopy, ir.KindDataDrop:
					u.MemoryUsed[0] = true
					if e.Kind == ir.KindMemoryInit || e.Kind == ir.KindDataDrop {
						u.DataUsed[int(e.Index)] = true
					}
				case ir.KindCallIndirect, ir.KindTableGet, ir.KindTableSet, ir.KindTableSize,
					ir.KindTableGrow, ir.KindTableFill, ir.KindTableCopy, ir.KindTableInit, ir.KindElemDrop:
					u.TableUsed[e.TableIdx] = true
					if e.Kind == ir.KindTableInit || e.Kind == ir.KindElemDrop {
						u.ElementsUsed[int(e.Index)] = true
					}
				}
			}), m.Arena, r)
		}
	}

	// Global initializers may themselves reference other live globals.
	for idx, g := range m.Globals {
		if u.LiveGlobals[uint32(idx)] && g.Init.Valid() {
			visitor.Visit(visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
				if e.Kind == ir.KindGlobalGet {
					u.LiveGlobals[e.Index] = true
				}
			}), m.Arena, g.Init)
		}
	}

	return u
}
