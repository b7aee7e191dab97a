// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// lub computes the least upper bound of a flat type lattice whose only
// structure is a bottom element: types.Unreachable (no value, any branch
// that never completes) and types.None (no value, the zero-arity case) both
// act as the lattice's identity. Any two distinct non-bottom types have no
// common supertype in this IR's type model, so lub of those reports "no
// narrowing possible" by returning false as its third result, with the
// accumulator unchanged.
func lub(acc types.Type, accSet bool, t types.Type) (types.Type, bool, bool) {
	if t == types.Unreachable || t == types.None {
		return acc, accSet, true
	}
	if !accSet {
		return t, true, true
	}
	if acc == t {
		return acc, true, true
	}
	return acc, accSet, false
}

// LocalSubtyping gathers the least-upper-bound of every value assigned to
// each local (via LocalSet/LocalTee) within a function. When every
// assignment agrees on a single type strictly narrower than the local's
// declared type, the declaration is narrowed and the cached Type field on
// every LocalGet of that local is updated to match.
type LocalSubtyping struct{}

// Name implements pass.Pass.
func (LocalSubtyping) Name() string { return pass.NameLocalSubtyping }

// Run implements pass.Pass.
func (p LocalSubtyping) Run(m *ir.Module) error {
	for _, fn := range m.Functions {
		if fn.Body == nil {
			continue
		}
		refineFunctionLocals(m.Arena, fn)
	}
	return nil
}

func refineFunctionLocals(arena *ir.Arena, fn *ir.Function) {
	nParams := len(fn.Params)
	n := fn.NumLocals()

	accs := make([]types.Type, n)
	accSet := make([]bool, n)
	ok := make([]bool, n)
	for i := nParams; i < n; i++ {
		ok[i] = true
	}

	collect := visitor.Func(func(a *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindLocalSet && e.Kind != ir.KindLocalTee {
			return
		}
		idx := int(e.Index)
		if idx < nParams || idx >= n || !ok[idx] {
			return
		}
		rhsType := a.Get(e.A).Type
		accs[idx], accSet[idx], ok[idx] = lub(accs[idx], accSet[idx], rhsType)
	})
	for _, r := range fn.Body {
		visitor.Visit(collect, arena, r)
	}

	remapped := make(map[uint32]types.Type)
	for i := nParams; i < n; i++ {
		if !ok[i] || !accSet[i] {
			continue
		}
		declared := fn.LocalType(uint32(i))
		if accs[i] != declared {
			fn.Vars[i-nParams] = accs[i]
			remapped[uint32(i)] = accs[i]
		}
	}
	if len(remapped) == 0 {
		return
	}

	fixup := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindLocalGet {
			return
		}
		if t, ok := remapped[e.Index]; ok {
			e.Type = t
		}
	})
	for _, r := range fn.Body {
		visitor.Visit(fixup, arena, r)
	}
}
