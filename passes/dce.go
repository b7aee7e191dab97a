// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// DCE truncates every Block list (and function body) after the first child
// whose static Type is Unreachable: nothing after an unreachable expression
// can execute, so the tail is dead. It recurses into every kept child so
// nested blocks are trimmed the same way.
type DCE struct{}

// Name implements pass.Pass.
func (DCE) Name() string { return pass.NameDCE }

// Run implements pass.Pass.
func (p DCE) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		fn.Body = dceList(m.Arena, fn.Body)
	}
	return nil
}

func dceList(arena *ir.Arena, list []ir.ExprRef) []ir.ExprRef {
	for i, r := range list {
		dceExpr(arena, r)
		if r.Valid() && arena.Get(r).IsTerminating() {
			return list[:i+1]
		}
	}
	return list
}

func dceExpr(arena *ir.Arena, r ir.ExprRef) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	if e.Kind == ir.KindBlock {
		e.List = dceList(arena, e.List)
	}
	for _, c := range e.List {
		dceExpr(arena, c)
	}
	dceExpr(arena, e.A)
	dceExpr(arena, e.B)
	dceExpr(arena, e.C)
}
