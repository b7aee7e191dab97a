// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import "github.com/mavity/wasmrewire/ir"

// SSADef records one assignment to a local: the block it occurs in and the
// ExprRef that performs the write (LocalSet/LocalTee), or the zero ExprRef
// for the implicit parameter definition at function entry.
type SSADef struct {
	Block BlockID
	Write ir.ExprRef
}

// Phi is a synthetic join-point definition for a local. Values has one slot
// per CFG predecessor of Block, in Preds order; BuildSSAView sizes it but
// does not fill the slots, so each holds the zero SSADef.
type Phi struct {
	Local  uint32
	Block  BlockID
	Values []SSADef
}

// SSAView is a definition view of one function's locals, built over its CFG
// and dominance tree: a defining write per local per block it's assigned
// in, plus Phi nodes placed at the iterated dominance frontier of every
// local's definition set (minimal, not liveness-pruned, SSA). Uses are not
// recorded: there is no def-to-uses map.
type SSAView struct {
	cfg   *CFG
	dom   *DominanceTree
	Defs  map[uint32][]SSADef // local index -> every direct definition
	Phis  map[BlockID][]*Phi  // block -> phis placed there
}

// BuildSSAView computes the minimal-SSA phi placement for fn's locals given
// its CFG and dominance tree.
func BuildSSAView(arena *ir.Arena, fn *ir.Function, cfg *CFG, dom *DominanceTree) *SSAView {
	v := &SSAView{
		cfg:  cfg,
		dom:  dom,
		Defs: make(map[uint32][]SSADef),
		Phis: make(map[BlockID][]*Phi),
	}

	defBlocks := make(map[uint32]map[BlockID]bool)
	addDef := func(local uint32, block BlockID, write ir.ExprRef) {
		v.Defs[local] = append(v.Defs[local], SSADef{Block: block, Write: write})
		if defBlocks[local] == nil {
			defBlocks[local] = make(map[BlockID]bool)
		}
		defBlocks[local][block] = true
	}

	for i := range fn.Params {
		addDef(uint32(i), cfg.Entry, 0)
	}

	for _, b := range cfg.Blocks {
		for _, r := range b.Exprs {
			e := arena.Get(r)
			if e.Kind == ir.KindLocalSet || e.Kind == ir.KindLocalTee {
				addDef(e.Index, b.ID, r)
			}
		}
	}

	for local, blocks := range defBlocks {
		frontier := iteratedDominanceFrontier(dom, blocks)
		for _, block := range frontier {
			if int(block) < 0 || int(block) >= len(cfg.Blocks) {
				continue
			}
			b := cfg.Blocks[block]
			phi := &Phi{Local: local, Block: block, Values: make([]SSADef, len(b.Preds))}
			v.Phis[block] = append(v.Phis[block], phi)
		}
	}

	return v
}

// iteratedDominanceFrontier repeatedly unions dominance frontiers of the
// worklist until it stops growing, the standard construction for minimal
// (non-pruned further) SSA phi placement.
func iteratedDominanceFrontier(dom *DominanceTree, seed map[BlockID]bool) []BlockID {
	result := make(map[BlockID]bool)
	worklist := make([]BlockID, 0, len(seed))
	for b := range seed {
		worklist = append(worklist, b)
	}

	for len(worklist) > 0 {
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for f := range dom.DominanceFrontier(b) {
			if !result[f] {
				result[f] = true
				worklist = append(worklist, f)
			}
		}
	}

	out := make([]BlockID, 0, len(result))
	for b := range result {
		out = append(out, b)
	}
	return out
}

// PhisAt returns the phi nodes placed at block, if any.
func (v *SSAView) PhisAt(block BlockID) []*Phi {
	return v.Phis[block]
}

// DefsOf returns every direct (non-phi) definition of local.
func (v *SSAView) DefsOf(local uint32) []SSADef {
	return v.Defs[local]
}
