// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package analysis implements the read-only dataflow and structural
// analyses passes consult: CFG, dominator tree, SSA, call graph, module
// stats, usage/reachability, cost estimation, deep structural hashing, the
// pattern matcher, and the constant evaluator.
package analysis

import "github.com/mavity/wasmrewire/ir"

// BlockID identifies one CFG basic block. The entry block is always 0.
type BlockID int

// Block is one basic block: a run of a function body's top-level
// expressions between structured control boundaries (block/loop entries,
// if arms, break/return/unreachable), plus its predecessor and successor
// sets.
type Block struct {
	ID    BlockID
	Exprs []ir.ExprRef // expressions belonging to this block, in order
	Succs []BlockID
	Preds []BlockID
}

// CFG is the control-flow graph for one function body.
type CFG struct {
	Blocks []*Block
	Entry  BlockID

	// owner maps an expression reference that carries control flow
	// (Break, Return, If, Loop, Unreachable) to the block that contains it.
	owner map[ir.ExprRef]BlockID
}

// BlockOf returns the block containing the control-flow-bearing expression
// r, if any was recorded.
func (c *CFG) BlockOf(r ir.ExprRef) (BlockID, bool) {
	b, ok := c.owner[r]
	return b, ok
}

type cfgBuilder struct {
	arena *ir.Arena
	cfg   *CFG
	cur   *Block
}

// BuildCFG partitions fn's body into basic blocks at structured control
// boundaries. A block's Preds is inferred
// from every other block's recorded Succs once construction finishes.
//
// An unlabeled or never-branched-to Block is transparent: it does not fork a
// new basic block on its own, only the If/Loop/Break boundaries it contains
// do. Its join block is allocated lazily, on the first Break that actually
// targets it, so `(block (if c A B))` yields exactly the four blocks
// (entry, then, else, join) an if/else diamond expects, rather than
// a spurious extra join nothing branches to.
func BuildCFG(arena *ir.Arena, fn *ir.Function) *CFG {
	cfg := &CFG{owner: make(map[ir.ExprRef]BlockID)}
	b := &cfgBuilder{arena: arena, cfg: cfg}
	entry := b.newBlock()
	cfg.Entry = entry.ID
	b.cur = entry
	b.walkList(fn.Body, nil)
	b.linkPreds()
	return cfg
}

func (b *cfgBuilder) newBlock() *Block {
	blk := &Block{ID: BlockID(len(b.cfg.Blocks))}
	b.cfg.Blocks = append(b.cfg.Blocks, blk)
	return blk
}

func (b *cfgBuilder) linkPreds() {
	for _, blk := range b.cfg.Blocks {
		for _, s := range blk.Succs {
			succ := b.cfg.Blocks[s]
			succ.Preds = appendUnique(succ.Preds, blk.ID)
		}
	}
}

func appendUnique(ids []BlockID, id BlockID) []BlockID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// lazyJoin allocates its block on first use, so a Block that nothing ever
// branches to never forks the CFG.
type lazyJoin struct {
	id *BlockID
}

func (l *lazyJoin) get(b *cfgBuilder) BlockID {
	if l.id == nil {
		blk := b.newBlock()
		l.id = &blk.ID
	}
	return *l.id
}

// labelScope binds one enclosing label to the block a Break targets: a
// Loop's label continues (jumps back to its head); a Block's label exits
// (jumps to its lazily allocated join).
type labelScope struct {
	name   string
	isLoop bool
	head   BlockID   // meaningful when isLoop
	join   *lazyJoin // meaningful when !isLoop
}

// walkList processes a straight-line list of statements, splitting blocks at
// structured control boundaries.
func (b *cfgBuilder) walkList(list []ir.ExprRef, enclosing []labelScope) {
	for _, r := range list {
		e := b.arena.Get(r)
		switch e.Kind {
		case ir.KindIf:
			b.cur.Exprs = append(b.cur.Exprs, r)
			b.cfg.owner[r] = b.cur.ID
			pre := b.cur
			join := b.newBlock()

			thenBlk := b.newBlock()
			pre.Succs = append(pre.Succs, thenBlk.ID)
			b.cur = thenBlk
			b.walkExpr(e.B, enclosing)
			b.cur.Succs = append(b.cur.Succs, join.ID)

			if e.C.Valid() {
				elseBlk := b.newBlock()
				pre.Succs = append(pre.Succs, elseBlk.ID)
				b.cur = elseBlk
				b.walkExpr(e.C, enclosing)
				b.cur.Succs = append(b.cur.Succs, join.ID)
			} else {
				pre.Succs = append(pre.Succs, join.ID)
			}

			b.cur = join

		case ir.KindBlock:
			b.cur.Exprs = append(b.cur.Exprs, r)
			join := &lazyJoin{}
			scope := append(append([]labelScope{}, enclosing...), labelScope{name: e.Name, join: join})
			b.walkList(e.List, scope)
			if join.id != nil {
				b.cur.Succs = append(b.cur.Succs, *join.id)
				b.cur = b.cfg.Blocks[*join.id]
			}

		case ir.KindLoop:
			b.cur.Exprs = append(b.cur.Exprs, r)
			b.cfg.owner[r] = b.cur.ID
			head := b.newBlock()
			b.cur.Succs = append(b.cur.Succs, head.ID)
			after := b.newBlock()
			scope := append(append([]labelScope{}, enclosing...), labelScope{name: e.Name, isLoop: true, head: head.ID})
			b.cur = head
			b.walkExpr(e.A, scope)
			b.cur.Succs = append(b.cur.Succs, head.ID, after.ID)
			b.cur = after

		case ir.KindBreak:
			b.cur.Exprs = append(b.cur.Exprs, r)
			b.cfg.owner[r] = b.cur.ID
			target := b.resolveBreakTarget(enclosing, e.Name)
			next := b.newBlock()
			if e.A.Valid() { // conditional: may fall through
				b.cur.Succs = append(b.cur.Succs, target, next.ID)
			} else {
				b.cur.Succs = append(b.cur.Succs, target)
			}
			b.cur = next

		case ir.KindReturn, ir.KindUnreachable:
			b.cur.Exprs = append(b.cur.Exprs, r)
			b.cfg.owner[r] = b.cur.ID
			b.cur = b.newBlock() // unreachable tail; no edge into it

		default:
			b.cur.Exprs = append(b.cur.Exprs, r)
		}
	}
}

func (b *cfgBuilder) walkExpr(r ir.ExprRef, enclosing []labelScope) {
	if !r.Valid() {
		return
	}
	e := b.arena.Get(r)
	if e.Kind == ir.KindBlock {
		b.walkList(e.List, enclosing)
		return
	}
	b.walkList([]ir.ExprRef{r}, enclosing)
}

func (b *cfgBuilder) resolveBreakTarget(scopes []labelScope, name string) BlockID {
	for i := len(scopes) - 1; i >= 0; i-- {
		if scopes[i].name == name {
			if scopes[i].isLoop {
				return scopes[i].head
			}
			return scopes[i].join.get(b)
		}
	}
	// Unresolved label: fall through in place rather than crashing CFG
	// construction on malformed input; the validator flags this separately
	//.
	return b.cur.ID
}
