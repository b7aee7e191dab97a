// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// IdentifyLoops classifies every structured Loop by its body's shape:
// Do-While when the body is a Block whose last child is a conditional
// Break targeting the loop's own label, While when the body is a bare If.
// Any other shape is left LoopNone; this pass only recognizes the two
// canonical shapes a structured-control compiler actually emits for a
// source-level while/do-while, not every possible loop body.
type IdentifyLoops struct{}

// Name implements Pass.
func (IdentifyLoops) Name() string { return "identify-loops" }

// Run implements Pass.
func (p IdentifyLoops) Run(m *ir.Module, store *annotation.Store) {
	mark := visitor.Func(func(a *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindLoop {
			return
		}
		body := a.Get(e.A)
		switch {
		case body.Kind == ir.KindIf:
			store.SetLoopType(r, annotation.LoopWhile)
		case body.Kind == ir.KindBlock && isTrailingConditionalBreak(a, body, e.Name):
			store.SetLoopType(r, annotation.LoopDoWhile)
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.WalkReadOnly(mark, m.Arena, r)
		}
	}
}

func isTrailingConditionalBreak(a *ir.Arena, body *ir.Expression, loopName string) bool {
	if len(body.List) == 0 {
		return false
	}
	last := a.Get(body.List[len(body.List)-1])
	return last.Kind == ir.KindBreak && last.Name == loopName && last.A.Valid()
}
