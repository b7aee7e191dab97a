// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

// Pattern is the small structural-match DSL for
// matcher". A Pattern matches a subtree shape and, for Var, binds it into a
// MatchEnv for the rewrite function to consult.
type Pattern interface {
	match(arena *ir.Arena, r ir.ExprRef, env *MatchEnv) bool
}

// ConstPattern matches a constant equal to Literal.
type ConstPattern struct{ Literal types.Literal }

func (p ConstPattern) match(arena *ir.Arena, r ir.ExprRef, _ *MatchEnv) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	return e.Kind == ir.KindConst && e.Literal.Equal(p.Literal)
}

// VarPattern matches anything and binds it under Name.
type VarPattern struct{ Name string }

func (p VarPattern) match(_ *ir.Arena, r ir.ExprRef, env *MatchEnv) bool {
	if !r.Valid() {
		return false
	}
	env.bind(p.Name, r)
	return true
}

// UnaryPattern matches a Unary expression with operator Op over Sub.
type UnaryPattern struct {
	Op  ir.Op
	Sub Pattern
}

func (p UnaryPattern) match(arena *ir.Arena, r ir.ExprRef, env *MatchEnv) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	return e.Kind == ir.KindUnary && e.Op == p.Op && p.Sub.match(arena, e.A, env)
}

// BinaryPattern matches a Binary expression with operator Op over Left/Right.
type BinaryPattern struct {
	Op          ir.Op
	Left, Right Pattern
}

func (p BinaryPattern) match(arena *ir.Arena, r ir.ExprRef, env *MatchEnv) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	return e.Kind == ir.KindBinary && e.Op == p.Op &&
		p.Left.match(arena, e.A, env) && p.Right.match(arena, e.B, env)
}

// AnyBinaryOp matches a Binary expression whose operator is any one of Ops,
// with Left/Right matching its operands. The matched operator itself is not
// bound into the MatchEnv.
type AnyBinaryOp struct {
	Ops         []ir.Op
	Left, Right Pattern
}

func (p AnyBinaryOp) match(arena *ir.Arena, r ir.ExprRef, env *MatchEnv) bool {
	if !r.Valid() {
		return false
	}
	e := arena.Get(r)
	if e.Kind != ir.KindBinary {
		return false
	}
	ok := false
	for _, op := range p.Ops {
		if e.Op == op {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}
	return p.Left.match(arena, e.A, env) && p.Right.match(arena, e.B, env)
}

// MatchEnv binds pattern variable names to ExprRefs during one match
// attempt.
type MatchEnv struct {
	bindings map[string]ir.ExprRef
}

// NewMatchEnv returns an empty MatchEnv.
func NewMatchEnv() *MatchEnv {
	return &MatchEnv{bindings: make(map[string]ir.ExprRef)}
}

func (env *MatchEnv) bind(name string, r ir.ExprRef) {
	env.bindings[name] = r
}

// Lookup returns the ExprRef bound to name.
func (env *MatchEnv) Lookup(name string) (ir.ExprRef, bool) {
	r, ok := env.bindings[name]
	return r, ok
}

// Rule pairs a Pattern with a rewrite function. The rewrite function
// returns the replacement ExprRef, or the zero value with ok=false to mean
// "this rule matched structurally but declines to rewrite" (used when a
// rule needs a runtime check the Pattern itself can't express).
type Rule struct {
	Name    string
	Pattern Pattern
	Rewrite func(arena *ir.Arena, env *MatchEnv) (ir.ExprRef, bool)
}

// Matcher holds a registered, ordered list of Rules. Matching is purely
// structural: it does not consult side-effect information, so only rules
// that are legal without a freshness/purity analysis may be registered
//.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Register appends r to the matcher's rule list.
func (m *Matcher) Register(r Rule) {
	m.rules = append(m.rules, r)
}

// Simplify attempts each registered rule against r in registration order;
// the first rule that both matches and rewrites wins. It returns the zero
// ExprRef and false if no rule applies.
func (m *Matcher) Simplify(arena *ir.Arena, r ir.ExprRef) (ir.ExprRef, bool) {
	for _, rule := range m.rules {
		env := NewMatchEnv()
		if rule.Pattern.match(arena, r, env) {
			if out, ok := rule.Rewrite(arena, env); ok {
				return out, true
			}
		}
	}
	return 0, false
}
