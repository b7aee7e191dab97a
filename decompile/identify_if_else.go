// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package decompile

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// IdentifyIfElse recognizes the "inverted if" shape a structured compiler
// emits for `if (!cond) { ...; break } else-body`: a labeled Block whose
// first statement is a conditional Break out of the block on cond, followed
// by the would-be else body falling through in place. It cross-checks the
// shape against the CFG (the block containing the Break must have exactly
// two successors, confirming it is genuinely a two-way branch and not, say,
// a loop-exit Break with no alternative path) before attaching an IfInfo
// with Inverted set, since the source condition was "exit when true" rather
// than "enter when true".
type IdentifyIfElse struct{}

// Name implements Pass.
func (IdentifyIfElse) Name() string { return "identify-if-else" }

// Run implements Pass.
func (p IdentifyIfElse) Run(m *ir.Module, store *annotation.Store) {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		cfg := analysis.BuildCFG(m.Arena, fn)
		mark := visitor.Func(func(a *ir.Arena, r ir.ExprRef, e *ir.Expression) {
			if e.Kind != ir.KindBlock || e.Name == "" || len(e.List) == 0 {
				return
			}
			first := a.Get(e.List[0])
			if first.Kind != ir.KindBreak || first.Name != e.Name || !first.A.Valid() {
				return
			}
			blockID, ok := cfg.BlockOf(e.List[0])
			if !ok || len(cfg.Blocks[blockID].Succs) != 2 {
				return
			}
			store.SetIfInfo(r, annotation.IfInfo{Condition: first.A, Inverted: true})
		})
		for _, r := range fn.Body {
			visitor.WalkReadOnly(mark, m.Arena, r)
		}
	}
}
