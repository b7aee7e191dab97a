// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// IdentifyBooleans marks every relational Binary and every relational
// (EqZ*) Unary as HighLevelBool, the surface-level condition type a
// decompiled `if`/`while` reconstructs from.
type IdentifyBooleans struct{}

// Name implements Pass.
func (IdentifyBooleans) Name() string { return "identify-booleans" }

// Run implements Pass.
func (p IdentifyBooleans) Run(m *ir.Module, store *annotation.Store) {
	mark := visitor.Func(func(_ *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		switch e.Kind {
		case ir.KindBinary, ir.KindUnary:
			if e.Op.IsRelational() {
				store.SetHighLevelType(r, annotation.HighLevelBool)
			}
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.WalkReadOnly(mark, m.Arena, r)
		}
	}
}
