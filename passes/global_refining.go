// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// GlobalRefining gathers the least-upper-bound of a global's initializer
// plus every value assigned to it via GlobalSet across the whole module.
// When that LUB strictly narrows the declared type, the global's
// declaration is updated and every GlobalGet of it has its cached Type
// field corrected to match, so a later pass reasoning off that cache sees
// the narrowed type rather than a stale one. Imported globals are left
// alone: their declared type is owned by the host, not this module.
type GlobalRefining struct{}

// Name implements pass.Pass.
func (GlobalRefining) Name() string { return pass.NameGlobalRefining }

// Run implements pass.Pass.
func (p GlobalRefining) Run(m *ir.Module) error {
	n := len(m.Globals)
	accs := make([]types.Type, n)
	accSet := make([]bool, n)
	ok := make([]bool, n)
	for i, g := range m.Globals {
		ok[i] = !g.Import
	}

	for i, g := range m.Globals {
		if !ok[i] || !g.Init.Valid() {
			continue
		}
		rhsType := m.Arena.Get(g.Init).Type
		accs[i], accSet[i], ok[i] = lub(accs[i], accSet[i], rhsType)
	}

	collect := visitor.Func(func(a *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindGlobalSet {
			return
		}
		idx := int(e.Index)
		if idx >= n || !ok[idx] {
			return
		}
		rhsType := a.Get(e.A).Type
		accs[idx], accSet[idx], ok[idx] = lub(accs[idx], accSet[idx], rhsType)
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(collect, m.Arena, r)
		}
	}

	remapped := make(map[uint32]types.Type)
	for i, g := range m.Globals {
		if !ok[i] || !accSet[i] {
			continue
		}
		if accs[i] != g.Type {
			g.Type = accs[i]
			remapped[uint32(i)] = accs[i]
		}
	}
	if len(remapped) == 0 {
		return nil
	}

	fixup := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindGlobalGet {
			return
		}
		if t, found := remapped[e.Index]; found {
			e.Type = t
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(fixup, m.Arena, r)
		}
	}
	return nil
}
