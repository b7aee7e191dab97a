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

// DuplicateFunctionElimination hashes each function's signature and body
// with the deep structural hasher, groups functions by that hash, and
// within any group of two or more picks the first as canonical: every Call
// or RefFunc naming a non-canonical duplicate is redirected to the
// canonical function's name, and the duplicates are dropped from the
// module's function list.
type DuplicateFunctionElimination struct{}

// Name implements pass.Pass.
func (DuplicateFunctionElimination) Name() string { return pass.NameDuplicateFunctionElimination }

// Run implements pass.Pass.
func (p DuplicateFunctionElimination) Run(m *ir.Module) error {
	groups := make(map[uint64][]*ir.Function)
	var order []uint64
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		h := functionHash(m.Arena, fn)
		if _, ok := groups[h]; !ok {
			order = append(order, h)
		}
		groups[h] = append(groups[h], fn)
	}

	redirect := make(map[string]string)
	drop := make(map[string]bool)
	for _, h := range order {
		group := groups[h]
		if len(group) < 2 {
			continue
		}
		canonical := group[0]
		for _, dup := range group[1:] {
			redirect[dup.Name] = canonical.Name
			drop[dup.Name] = true
		}
	}
	if len(redirect) == 0 {
		return nil
	}

	resolve := func(name string) string {
		for {
			next, ok := redirect[name]
			if !ok {
				return name
			}
			name = next
		}
	}

	v := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind == ir.KindCall || e.Kind == ir.KindRefFunc {
			if _, ok := redirect[e.Name]; ok {
				e.Name = resolve(e.Name)
			}
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(v, m.Arena, r)
		}
	}
	// Redirect any exported/start/element-segment reference that names a
	// dropped duplicate directly to its canonical function, before the
	// index shift below accounts for the functions actually being removed.
	nameAt := func(idx uint32) (string, bool) {
		if int(idx) >= len(m.Functions) {
			return "", false
		}
		return m.Functions[idx].Name, true
	}
	for i, exp := range m.Exports {
		if exp.Kind != ir.FunctionImport {
			continue
		}
		if name, ok := nameAt(exp.Index); ok {
			if _, dup := redirect[name]; dup {
				if idx, ok := m.GetFunctionIndex(resolve(name)); ok {
					m.Exports[i].Index = idx
				}
			}
		}
	}
	if m.HasStart {
		if name, ok := nameAt(m.Start); ok {
			if _, dup := redirect[name]; dup {
				if idx, ok := m.GetFunctionIndex(resolve(name)); ok {
					m.Start = idx
				}
			}
		}
	}
	for _, seg := range m.Elements {
		for i, idx := range seg.Funcs {
			if name, ok := nameAt(idx); ok {
				if _, dup := redirect[name]; dup {
					if newIdx, ok := m.GetFunctionIndex(resolve(name)); ok {
						seg.Funcs[i] = newIdx
					}
				}
			}
		}
	}

	oldToNew := make(map[uint32]uint32, len(m.Functions))
	kept := make([]*ir.Function, 0, len(m.Functions))
	for oldIdx, fn := range m.Functions {
		if drop[fn.Name] {
			continue
		}
		oldToNew[uint32(oldIdx)] = uint32(len(kept))
		kept = append(kept, fn)
	}

	for i, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport {
			if newIdx, ok := oldToNew[exp.Index]; ok {
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

	m.Functions = kept
	return nil
}

func functionHash(arena *ir.Arena, fn *ir.Function) uint64 {
	h := analysis.DeepHashBody(arena, fn.Body)
	for _, p := range fn.Params {
		h = h*1099511628211 ^ uint64(p)
	}
	h = h*1099511628211 ^ uint64(fn.Results)
	return h
}
