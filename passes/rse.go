// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// RSE (redundant set elimination) looks, within a single straight-line list
// (a function's top-level body or one Block's list), for a LocalSet
// immediately followed by another LocalSet to the same local index with
// nothing in between to read the first value. The first set can never be
// observed, so it is rewritten into a Drop of its value expression,
// preserving any side effect the value might carry while discarding the
// now-redundant store. It only looks at directly adjacent statements; a
// set separated from its overwrite by an intervening read, or by an
// If/Loop that might read it, is left alone.
type RSE struct{}

// Name implements pass.Pass.
func (RSE) Name() string { return pass.NameRSE }

// Run implements pass.Pass.
func (p RSE) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		rseList(m, fn.Body)
	}
	return nil
}

func rseList(m *ir.Module, list []ir.ExprRef) {
	for i, r := range list {
		if !r.Valid() {
			continue
		}
		e := m.Arena.Get(r)
		if e.Kind == ir.KindBlock {
			rseList(m, e.List)
			continue
		}
		if e.Kind != ir.KindLocalSet || i+1 >= len(list) || !list[i+1].Valid() {
			continue
		}
		next := m.Arena.Get(list[i+1])
		if next.Kind == ir.KindLocalSet && next.Index == e.Index && !referencesLocal(m.Arena, next.A, e.Index) {
			*e = ir.Expression{Kind: ir.KindDrop, A: e.A}
		}
	}
}
