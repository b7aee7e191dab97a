// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// RemoveUnusedElements drops every element segment analysis.BuildUsage
// never marks used: a segment that lists no functions and that no
// TableInit/ElemDrop in a reachable function references (a segment that
// lists any function is always kept, passive or not), with indices remapped
// through every surviving TableInit and ElemDrop so they still name the
// same segment. It is GUFA's
// companion rather than a duplicate of it: GUFA prunes unreachable
// functions and globals and remaps element-segment function lists to the
// surviving function indices, but never shrinks m.Elements itself, since
// that cleanup and this one are independent (a segment can reference only
// live functions yet still be an unused segment in its own right).
type RemoveUnusedElements struct{}

// Name implements pass.Pass.
func (RemoveUnusedElements) Name() string { return pass.NameRemoveUnusedElements }

// Run implements pass.Pass.
func (p RemoveUnusedElements) Run(m *ir.Module) error {
	usage := analysis.BuildUsage(m)

	oldToNew := make(map[int]uint32, len(m.Elements))
	kept := make([]*ir.ElementSegment, 0, len(m.Elements))
	for oldIdx, seg := range m.Elements {
		if !usage.ElementsUsed[oldIdx] {
			continue
		}
		oldToNew[oldIdx] = uint32(len(kept))
		kept = append(kept, seg)
	}
	if len(kept) == len(m.Elements) {
		return nil
	}
	m.Elements = kept

	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			remapElementRefs(m.Arena, r, oldToNew)
		}
	}
	return nil
}

func remapElementRefs(arena *ir.Arena, r ir.ExprRef, oldToNew map[int]uint32) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	if e.Kind == ir.KindTableInit || e.Kind == ir.KindElemDrop {
		if newIdx, ok := oldToNew[int(e.Index)]; ok {
			e.Index = newIdx
		}
	}
	for _, c := range e.List {
		remapElementRefs(arena, c, oldToNew)
	}
	remapElementRefs(arena, e.A, oldToNew)
	remapElementRefs(arena, e.B, oldToNew)
	remapElementRefs(arena, e.C, oldToNew)
}
