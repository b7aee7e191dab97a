// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// MaxInlineInstructions is the cost-estimator ceiling a callee's body must
// stay under to be considered for inlining.
const MaxInlineInstructions = 24

// Inlining replaces a Call to a small, non-recursive, known-arity callee
// with a Block that first LocalSets each operand into a fresh callee-param
// local appended to the caller's var list (in operand order), then splices
// in a deep-cloned copy of the callee's body with every local index shifted
// up by the caller's prior local count, so the clone's original param/var
// references land on the correct fresh locals. It records real per-function
// parameter arities from ir.Function.Params rather than the simplified
// model flagged as a gap elsewhere; a call to an unknown-arity or missing
// callee is left untouched.
type Inlining struct{}

// Name implements pass.Pass.
func (Inlining) Name() string { return pass.NameInlining }

// Run implements pass.Pass.
func (p Inlining) Run(m *ir.Module) error {
	byName := make(map[string]*ir.Function, len(m.Functions))
	for _, fn := range m.Functions {
		byName[fn.Name] = fn
	}

	b := ir.NewBuilder(m)
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
			if e.Kind != ir.KindCall || e.IsReturn {
				return
			}
			callee, ok := byName[e.Name]
			if !ok || callee.Body == nil || callee.Name == fn.Name {
				return
			}
			if len(callee.Params) != len(e.List) {
				return // unknown/mismatched arity: skip the site, per the missing-reference rule
			}
			cost := analysis.EstimateCost(arena, callee.Body)
			if cost.InstructionCount > MaxInlineInstructions || cost.CallCount > 0 {
				return
			}
			inlineCallSite(m, b, fn, callee, r, e)
		})
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}

func inlineCallSite(m *ir.Module, b *ir.Builder, caller, callee *ir.Function, r ir.ExprRef, e *ir.Expression) {
	shift := uint32(len(caller.Params) + len(caller.Vars))

	stmts := make([]ir.ExprRef, 0, len(e.List)+len(callee.Body))
	for i, operand := range e.List {
		paramLocal := shift + uint32(i)
		stmts = append(stmts, b.LocalSet(paramLocal, operand))
	}
	caller.Vars = append(caller.Vars, callee.Params...)
	caller.Vars = append(caller.Vars, callee.Vars...)

	remap := visitor.Func(func(arena *ir.Arena, _ ir.ExprRef, ce *ir.Expression) {
		switch ce.Kind {
		case ir.KindLocalGet, ir.KindLocalSet, ir.KindLocalTee:
			ce.Index += shift
		}
	})
	for _, stmt := range callee.Body {
		cloned := b.DeepClone(stmt)
		visitor.Visit(remap, m.Arena, cloned)
		stmts = append(stmts, cloned)
	}

	block := b.Block("", stmts, e.Type)
	replaceWith(m.Arena, r, block)
}
