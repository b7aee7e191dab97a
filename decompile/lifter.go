// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package decompile implements the annotation-producing passes the
// decompiler runs over an already-optimized module: each pass reads the IR
// and writes facts to an annotation.Store without ever mutating the
// expression tree itself, so running the lifter twice (or not at all) never
// changes what a later optimization or printing pass sees.
package decompile

import (
	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
)

// Pass is the annotation-only counterpart to pass.Pass: same per-module
// entry point shape, but it writes to store instead of returning an error,
// since every check here is best-effort pattern recognition, not something
// that can fail on well-formed IR.
type Pass interface {
	Name() string
	Run(m *ir.Module, store *annotation.Store)
}

// Order is the fixed pass sequence the lifter runs, later passes relying on
// facts the earlier ones recorded (IdentifyIfElse's Break-shaped blocks are
// easier to read once IdentifyBooleans has marked their conditions, and
// ExpressionRecombination benefits from running last so it sees every
// other annotation already settled).
var Order = []Pass{
	IdentifyPointers{},
	IdentifyBooleans{},
	IdentifyLoops{},
	IdentifyIfElse{},
	ExpressionRecombination{},
}

// Lift runs every pass in Order against m in sequence, into a fresh
// annotation.Store, assigns that store to m.Annotations, and returns it.
func Lift(m *ir.Module) *annotation.Store {
	store := annotation.NewStore()
	for _, p := range Order {
		p.Run(m, store)
	}
	m.Annotations = store
	return store
}
