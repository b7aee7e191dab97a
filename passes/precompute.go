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

// MaxPrecomputeSweeps bounds the number of bottom-up fold sweeps a function
// body receives before Precompute gives up waiting for a fixpoint.
const MaxPrecomputeSweeps = 8

// Precompute folds constant-only subtrees into a single literal, bottom-up,
// repeating until a sweep makes no further change or the sweep cap is
// reached. It relies entirely on analysis.Evaluator's fold rules: integer
// overflow wraps, integer division/remainder by zero is never folded, and
// float operations fold only when the evaluator judges them
// bit-reproducible.
type Precompute struct {
	Evaluator *analysis.Evaluator
}

// NewPrecompute returns a Precompute pass with its own Evaluator cache.
func NewPrecompute() *Precompute {
	return &Precompute{Evaluator: analysis.NewEvaluator()}
}

// Name implements pass.Pass.
func (*Precompute) Name() string { return pass.NamePrecompute }

// Run implements pass.Pass.
func (p *Precompute) Run(m *ir.Module) error {
	if p.Evaluator == nil {
		p.Evaluator = analysis.NewEvaluator()
	}
	for _, fn := range m.Functions {
		for sweep := 0; sweep < MaxPrecomputeSweeps; sweep++ {
			changed := false
			v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
				if e.Kind == ir.KindConst {
					return
				}
				if lit, ok := p.Evaluator.Fold(arena, r); ok {
					*e = ir.Expression{Kind: ir.KindConst, Type: lit.GetType(), Literal: lit}
					changed = true
				}
			})
			for _, r := range fn.Body {
				visitor.BottomUp(v, m.Arena, r)
			}
			if !changed {
				break
			}
		}
	}
	return nil
}
