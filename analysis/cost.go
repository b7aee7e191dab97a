// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/visitor"
)

// Cost is the size/complexity estimate the cost estimator uses as
// the inliner's size heuristic.
type Cost struct {
	InstructionCount int
	CallCount        int
	LoopCount        int
	HasTryDelegate   bool
}

// EstimateCost walks fn's body and totals its instruction/call/loop counts.
func EstimateCost(arena *ir.Arena, body []ir.ExprRef) Cost {
	var c Cost
	visit := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		c.InstructionCount++
		switch e.Kind {
		case ir.KindCall, ir.KindCallIndirect:
			c.CallCount++
		case ir.KindLoop:
			c.LoopCount++
		case ir.KindTry:
			if e.HasDelegate {
				c.HasTryDelegate = true
			}
		}
	})
	for _, r := range body {
		visitor.Visit(visit, arena, r)
	}
	return c
}
