// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// IdentifyPointers finds every Load/Store's ptr child and marks it
// HighLevelPointer, then propagates that classification backward through
// AddInt32/SubInt32 to the left operand, treating the left side as the base
// pointer by the convention `ptr + offset`.
type IdentifyPointers struct{}

// Name implements Pass.
func (IdentifyPointers) Name() string { return "identify-pointers" }

// Run implements Pass.
func (p IdentifyPointers) Run(m *ir.Module, store *annotation.Store) {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		mark := visitor.Func(func(a *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
			switch e.Kind {
			case ir.KindLoad, ir.KindStore:
				markPointer(a, store, e.A)
			}
		})
		for _, r := range fn.Body {
			visitor.WalkReadOnly(mark, m.Arena, r)
		}
	}
}

func markPointer(a *ir.Arena, store *annotation.Store, r ir.ExprRef) {
	if !r.Valid() {
		return
	}
	store.SetHighLevelType(r, annotation.HighLevelPointer)
	e := a.Get(r)
	if e.Kind == ir.KindBinary && (e.Op == ir.AddInt32 || e.Op == ir.SubInt32) {
		markPointer(a, store, e.A)
	}
	if e.Kind == ir.KindLocalGet {
		store.SetVariableRole(r, annotation.RoleBasePointer)
	}
}
