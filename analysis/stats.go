// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// Stats holds per-entity reference counts used by the reorder and
// remove-unused passes.
type Stats struct {
	FuncRefs   map[string]int
	GlobalRefs map[uint32]int
	TypeRefs   map[types32]int
}

type types32 = uint32

// BuildStats scans every function body, plus exports, the start function,
// and element segments, for references to functions, globals, and types.
func BuildStats(m *ir.Module) *Stats {
	s := &Stats{
		FuncRefs:   make(map[string]int),
		GlobalRefs: make(map[uint32]int),
		TypeRefs:   make(map[types32]int),
	}

	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		for _, r := range fn.Body {
			visitor.Visit(visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
				switch e.Kind {
				case ir.KindCall:
					s.FuncRefs[e.Name]++
				case ir.KindRefFunc:
					s.FuncRefs[e.Name]++
				case ir.KindGlobalGet, ir.KindGlobalSet:
					s.GlobalRefs[e.Index]++
				case ir.KindCallIndirect:
					if id, ok := e.TypeArg.SignatureID(); ok {
						s.TypeRefs[id]++
					}
				}
			}), m.Arena, r)
		}
	}

	for _, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport && int(exp.Index) < len(m.Functions) {
			s.FuncRefs[m.Functions[exp.Index].Name]++
		}
	}
	if m.HasStart && int(m.Start) < len(m.Functions) {
		s.FuncRefs[m.Functions[m.Start].Name]++
	}
	for _, seg := range m.Elements {
		for _, idx := range seg.Funcs {
			if int(idx) < len(m.Functions) {
				s.FuncRefs[m.Functions[idx].Name]++
			}
		}
	}
	for _, g := range m.Globals {
		if g.Init.Valid() {
			visitor.Visit(visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
				if e.Kind == ir.KindGlobalGet {
					s.GlobalRefs[e.Index]++
				}
			}), m.Arena, g.Init)
		}
	}

	return s
}
