// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// MergeBlocks flattens a Block whose single child is itself a Block, when
// their labels don't conflict: an unlabeled outer block absorbs an inner
// block's list; two blocks sharing the same (non-empty) label merge the
// same way; any other label combination is left alone, since collapsing it
// would change which label a Break inside the inner block resolves to.
type MergeBlocks struct{}

// Name implements pass.Pass.
func (MergeBlocks) Name() string { return pass.NameMergeBlocks }

// Run implements pass.Pass.
func (p MergeBlocks) Run(m *ir.Module) error {
	v := visitor.Func(func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindBlock || len(e.List) != 1 {
			return
		}
		inner := arena.Get(e.List[0])
		if inner.Kind != ir.KindBlock {
			return
		}
		if e.Name != "" && inner.Name != "" && e.Name != inner.Name {
			return
		}
		mergedName := e.Name
		if mergedName == "" {
			mergedName = inner.Name
		}
		e.Name = mergedName
		e.List = inner.List
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.BottomUp(v, m.Arena, r)
		}
	}
	return nil
}
