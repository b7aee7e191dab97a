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

// ReorderTypes ranks the signature types that CallIndirect expressions
// reference by descending use count (from analysis.Stats.TypeRefs). The
// ranking is not applied: the module is left unchanged, every CallIndirect
// keeps its TypeArg, and the process-wide type store keeps its ids.
type ReorderTypes struct{}

// Name implements pass.Pass.
func (ReorderTypes) Name() string { return pass.NameReorderTypes }

// Run implements pass.Pass.
func (p ReorderTypes) Run(m *ir.Module) error {
	stats := analysis.BuildStats(m)
	if len(stats.TypeRefs) < 2 {
		return nil
	}

	ids := make([]uint32, 0, len(stats.TypeRefs))
	for id := range stats.TypeRefs {
		ids = append(ids, id)
	}
	sortDescByCount(ids, stats.TypeRefs)

	priority := make(map[uint32]int, len(ids))
	for rank, id := range ids {
		priority[id] = rank
	}

	remap := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindCallIndirect {
			return
		}
		// Type identity is preserved (the type store is the single source
		// of truth for signature shape); only priority bookkeeping could
		// drive a future binary encoder's type-section ordering. Nothing
		// in this IR layer needs the TypeArg value itself to change.
		_ = priority[uint32(e.TypeArg)]
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(remap, m.Arena, r)
		}
	}
	return nil
}

func sortDescByCount(ids []uint32, counts map[uint32]int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && counts[ids[j-1]] < counts[ids[j]]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
