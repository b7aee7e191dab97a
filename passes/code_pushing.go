// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// CodePushing moves a local.set one statement closer to its use: within a
// straight-line list, a LocalSet whose value is a bare Const and whose
// following statement neither reads nor writes that local is swapped with
// that statement. Restricting the moved value to Const sidesteps having to
// prove the swap doesn't change what value a LocalGet or GlobalGet operand
// would observe; a single adjacent swap per match is foundation only, the
// general form pushes a set arbitrarily far toward its first real use.
type CodePushing struct{}

// Name implements pass.Pass.
func (CodePushing) Name() string { return pass.NameCodePushing }

// Run implements pass.Pass.
func (p CodePushing) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		codePushList(m, fn.Body)
	}
	return nil
}

func codePushList(m *ir.Module, list []ir.ExprRef) {
	for i := 0; i < len(list); i++ {
		if !list[i].Valid() {
			continue
		}
		e := m.Arena.Get(list[i])
		if e.Kind == ir.KindBlock {
			codePushList(m, e.List)
			continue
		}
		if e.Kind != ir.KindLocalSet || i+1 >= len(list) || !list[i+1].Valid() {
			continue
		}
		if !e.A.Valid() || m.Arena.Get(e.A).Kind != ir.KindConst {
			continue
		}
		if referencesLocal(m.Arena, list[i+1], e.Index) {
			continue
		}
		list[i], list[i+1] = list[i+1], list[i]
	}
}

// referencesLocal reports whether the subtree rooted at r reads, writes, or
// tees local index idx.
func referencesLocal(arena *ir.Arena, r ir.ExprRef, idx uint32) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	switch e.Kind {
	case ir.KindLocalGet, ir.KindLocalSet, ir.KindLocalTee:
		if e.Index == idx {
			return true
		}
	}
	for _, c := range e.List {
		if referencesLocal(arena, c, idx) {
			return true
		}
	}
	return referencesLocal(arena, e.A, idx) || referencesLocal(arena, e.B, idx) || referencesLocal(arena, e.C, idx)
}
