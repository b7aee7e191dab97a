// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

// DominanceTree holds the immediate dominator and dominance frontier of
// every block reachable from a CFG's entry.
// Unreachable blocks (no preds and not entry) are excluded.
type DominanceTree struct {
	IDom     map[BlockID]BlockID
	Frontier map[BlockID]map[BlockID]bool
	order    []BlockID // reverse-postorder, entry first
}

// ImmediateDominator returns b's immediate dominator and whether one exists
// (false only for the entry block or an unreachable block).
func (d *DominanceTree) ImmediateDominator(b BlockID) (BlockID, bool) {
	id, ok := d.IDom[b]
	return id, ok
}

// Dominates reports whether a dominates b (reflexively: a dominates itself).
func (d *DominanceTree) Dominates(a, b BlockID) bool {
	for cur := b; ; {
		if cur == a {
			return true
		}
		idom, ok := d.IDom[cur]
		if !ok {
			return cur == a
		}
		if idom == cur {
			return cur == a
		}
		cur = idom
	}
}

// DominanceFrontier returns the dominance frontier set of b.
func (d *DominanceTree) DominanceFrontier(b BlockID) map[BlockID]bool {
	return d.Frontier[b]
}

// BuildDominanceTree computes the dominator tree and dominance frontiers of
// cfg using the standard iterative data-flow algorithm (Cooper, Harvey &
// Kennedy), then derives frontiers via the well-known per-join
// walk-to-idom from each join block's predecessors.
func BuildDominanceTree(cfg *CFG) *DominanceTree {
	reachable := reachableFrom(cfg, cfg.Entry)
	order := reversePostorder(cfg, cfg.Entry, reachable)
	rpoIndex := make(map[BlockID]int, len(order))
	for i, b := range order {
		rpoIndex[b] = i
	}

	idom := make(map[BlockID]BlockID)
	idom[cfg.Entry] = cfg.Entry

	changed := true
	for changed {
		changed = false
		for _, b := range order {
			if b == cfg.Entry {
				continue
			}
			var newIdom BlockID
			first := true
			for _, p := range cfg.Blocks[b].Preds {
				if !reachable[p] {
					continue
				}
				if _, ok := idom[p]; !ok {
					continue
				}
				if first {
					newIdom = p
					first = false
					continue
				}
				newIdom = intersect(idom, rpoIndex, newIdom, p)
			}
			if first {
				continue // no processed predecessor yet
			}
			if cur, ok := idom[b]; !ok || cur != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}

	tree := &DominanceTree{
		IDom:     make(map[BlockID]BlockID),
		Frontier: make(map[BlockID]map[BlockID]bool),
		order:    order,
	}
	for b, d := range idom {
		if b == cfg.Entry {
			continue
		}
		tree.IDom[b] = d
	}
	for _, b := range order {
		tree.Frontier[b] = make(map[BlockID]bool)
	}

	for _, b := range order {
		preds := cfg.Blocks[b].Preds
		if len(preds) < 2 {
			continue
		}
		for _, p := range preds {
			if !reachable[p] {
				continue
			}
			runner := p
			for runner != idom[b] {
				if tree.Frontier[runner] == nil {
					tree.Frontier[runner] = make(map[BlockID]bool)
				}
				tree.Frontier[runner][b] = true
				next, ok := idom[runner]
				if !ok || next == runner {
					break
				}
				runner = next
			}
		}
	}

	return tree
}

func intersect(idom map[BlockID]BlockID, rpo map[BlockID]int, a, b BlockID) BlockID {
	for a != b {
		for rpo[a] > rpo[b] {
			a = idom[a]
		}
		for rpo[b] > rpo[a] {
			b = idom[b]
		}
	}
	return a
}

func reachableFrom(cfg *CFG, entry BlockID) map[BlockID]bool {
	seen := map[BlockID]bool{entry: true}
	stack := []BlockID{entry}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range cfg.Blocks[b].Succs {
			if !seen[s] {
				seen[s] = true
				stack = append(stack, s)
			}
		}
	}
	return seen
}

func reversePostorder(cfg *CFG, entry BlockID, reachable map[BlockID]bool) []BlockID {
	visited := make(map[BlockID]bool)
	var post []BlockID
	var visit func(BlockID)
	visit = func(b BlockID) {
		if visited[b] || !reachable[b] {
			return
		}
		visited[b] = true
		for _, s := range cfg.Blocks[b].Succs {
			visit(s)
		}
		post = append(post, b)
	}
	visit(entry)
	// reverse post-order
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
