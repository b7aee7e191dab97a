// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// Flatten converts one level of nested arithmetic into straight-line form:
// a Binary whose left operand is itself a Binary or Unary is rewritten into
// a Block that stashes the left operand's value in a fresh local first,
// then applies the original operator to that local and the unchanged right
// operand. It runs bottom-up, so once an inner Binary has been wrapped into
// a Block its parent's left operand is no longer a bare Binary/Unary and
// stops matching — only the innermost compound operand in any chain gets
// denested per run. It does not touch the right operand or reason about
// evaluation order across branches, the harder general case flatten in
// this design stays without.
type Flatten struct{}

// Name implements pass.Pass.
func (Flatten) Name() string { return pass.NameFlatten }

// Run implements pass.Pass.
func (p Flatten) Run(m *ir.Module) error {
	b := ir.NewBuilder(m)
	for _, fn := range m.Functions {
		v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
			if e.Kind != ir.KindBinary || !e.A.Valid() {
				return
			}
			left := arena.Get(e.A)
			if left.Kind != ir.KindBinary && left.Kind != ir.KindUnary {
				return
			}

			local := uint32(len(fn.Params) + len(fn.Vars))
			fn.Vars = append(fn.Vars, left.Type)

			set := b.LocalSet(local, e.A)
			get := b.LocalGet(local, left.Type)
			rewritten := b.Binary(e.Op, get, e.B, e.Type)
			block := b.Block("", []ir.ExprRef{set, rewritten}, e.Type)
			replaceWith(arena, r, block)
		})
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}
