// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// Untee rewrites every LocalTee{i, v}: T into
// Block(None, [LocalSet{i, v}, LocalGet{i}: T], T). Running Untee again on
// its own output is a no-op: a Block built by Untee contains no
// LocalTee node for the visitor to match a second time.
type Untee struct{}

// Name implements pass.Pass.
func (Untee) Name() string { return pass.NameUntee }

// Run implements pass.Pass.
func (p Untee) Run(m *ir.Module) error {
	b := ir.NewBuilder(m)
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindLocalTee {
			return
		}
		index, value, resultType := e.Index, e.A, e.Type
		set := b.LocalSet(index, value)
		get := b.LocalGet(index, resultType)
		block := b.Block("", []ir.ExprRef{set, get}, resultType)
		replaceWith(arena, r, block)
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}
