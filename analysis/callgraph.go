// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// CallGraph records direct-call edges between functions. Indirect calls
// (CallIndirect) are excluded since the target isn't known statically.
// Grounded on the teacher's name-keyed maps
// (compiler/wasm.Compiler.funcs map[string]uint32).
type CallGraph struct {
	callees map[string]map[string]bool
	callers map[string]map[string]bool
}

// BuildCallGraph scans every function body in m for Call expressions.
func BuildCallGraph(m *ir.Module) *CallGraph {
	g := &CallGraph{
		callees: make(map[string]map[string]bool),
		callers: make(map[string]map[string]bool),
	}
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		g.ensure(fn.Name)
		for _, r := range fn.Body {
			visitor.Visit(visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
				if e.Kind == ir.KindCall {
					g.addEdge(fn.Name, e.Name)
				}
			}), m.Arena, r)
		}
	}
	return g
}

func (g *CallGraph) ensure(name string) {
	if g.callees[name] == nil {
		g.callees[name] = make(map[string]bool)
	}
	if g.callers[name] == nil {
		g.callers[name] = make(map[string]bool)
	}
}

func (g *CallGraph) addEdge(caller, callee string) {
	g.ensure(caller)
	g.ensure(callee)
	g.callees[caller][callee] = true
	g.callers[callee][caller] = true
}

// Callees returns the set of functions fn calls directly.
func (g *CallGraph) Callees(fn string) []string {
	return keys(g.callees[fn])
}

// Callers returns the set of functions that call fn directly.
func (g *CallGraph) Callers(fn string) []string {
	return keys(g.callers[fn])
}

// HasEdge reports whether caller directly calls callee.
func (g *CallGraph) HasEdge(caller, callee string) bool {
	return g.callees[caller] != nil && g.callees[caller][callee]
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
