// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package visitor implements the mutable and read-only tree walks over the
// ir package's expression graph, generalizing the teacher's
// internal/ir.Walk (Before/Visit/After over a type switch) to ExprRef
// children addressed through a Module's Arena.
package visitor

import "github.com/mavity/wasmrewire/ir"

// Visitor rewrites expressions in place while walking the tree rooted at an
// ExprRef. Visit defaults to visiting the node itself then its children
// (top-down); implementations wanting bottom-up order call VisitChildren
// before their own rewrite instead of relying on the default Visit.
type Visitor interface {
	// VisitExpression is invoked once per node, before its children are
	// visited by the default Visit. Implementations mutate *e in place.
	VisitExpression(arena *ir.Arena, r ir.ExprRef, e *ir.Expression)
}

// Visit walks the subtree rooted at r, calling v.VisitExpression on r then
// descending into every child in the kind's field order.
func Visit(v Visitor, arena *ir.Arena, r ir.ExprRef) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	v.VisitExpression(arena, r, e)
	VisitChildren(v, arena, r)
}

// VisitChildren visits every ExprRef-valued child of the node at r, without
// visiting r itself. Passes that want bottom-up order call this first, then
// apply their own rewrite to r.
func VisitChildren(v Visitor, arena *ir.Arena, r ir.ExprRef) {
	e := arena.Get(r)
	for _, c := range e.List {
		Visit(v, arena, c)
	}
	Visit(v, arena, e.A)
	Visit(v, arena, e.B)
	Visit(v, arena, e.C)
}

// Func is a Visitor implemented by a single rewrite function, for passes
// that don't need any extra state.
type Func func(arena *ir.Arena, r ir.ExprRef, e *ir.Expression)

// VisitExpression implements Visitor.
func (f Func) VisitExpression(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
	f(arena, r, e)
}

// BottomUp walks the subtree rooted at r bottom-up: every child is visited
// and rewritten before v is applied to r itself. This is the order
// OptimizeInstructions and Precompute need, since a rewrite at a parent may
// depend on its children already having been simplified.
func BottomUp(v Visitor, arena *ir.Arena, r ir.ExprRef) {
	if !r.Valid() {
		return
	}
	e := arena.Get(r)
	for _, c := range e.List {
		BottomUp(v, arena, c)
	}
	BottomUp(v, arena, e.A)
	BottomUp(v, arena, e.B)
	BottomUp(v, arena, e.C)
	v.VisitExpression(arena, r, arena.Get(r))
}

// ReadOnlyVisitor observes expressions without mutating them. It is the
// read-only counterpart used by analyses.
type ReadOnlyVisitor interface {
	VisitExpression(arena *ir.Arena, r ir.ExprRef, e *ir.Expression)
}

// WalkReadOnly walks the subtree rooted at r top-down, calling v on every
// node. Since ReadOnlyVisitor has the same method shape as Visitor, any
// Visitor that does not mutate its argument also satisfies this contract;
// WalkReadOnly is kept distinct so call sites document intent.
func WalkReadOnly(v ReadOnlyVisitor, arena *ir.Arena, r ir.ExprRef) {
	Visit(visitorAdapter{v}, arena, r)
}

type visitorAdapter struct{ v ReadOnlyVisitor }

func (a visitorAdapter) VisitExpression(arena *ir.Arena, r ir.ExprRef, e *ir.Expression) {
	a.v.VisitExpression(arena, r, e)
}

// Count returns the number of nodes in the subtree rooted at r, visiting
// every node exactly once.
func Count(arena *ir.Arena, r ir.ExprRef) int {
	n := 0
	counter := Func(func(*ir.Arena, ir.ExprRef, *ir.Expression) { n++ })
	Visit(counter, arena, r)
	return n
}
