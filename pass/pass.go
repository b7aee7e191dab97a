// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package pass defines the shared contract every optimization and
// decompiler-annotation pass implements, plus a Runner that executes an
// ordered pass list over one Module and a name-keyed Registry passes
// register themselves into.
package pass

import "github.com/mavity/wasmrewire/ir"

// Pass is one unit of module rewriting or annotation. A Pass must be
// idempotent when run twice in a row with no intervening change: running it
// again after it reports no further changes must report none either.
type Pass interface {
	// Name identifies the pass for logging, CLI selection, and the default
	// optimization-level pass lists.
	Name() string

	// Run applies the pass to m in place. It returns an error only for a
	// malformed module the pass cannot safely continue past; declining to
	// rewrite anything is not an error.
	Run(m *ir.Module) error
}

// Func adapts a name and a run function into a Pass, for passes simple
// enough not to need their own named type.
type Func struct {
	FuncName string
	Fn       func(m *ir.Module) error
}

// Name returns f.FuncName.
func (f Func) Name() string { return f.FuncName }

// Run calls f.Fn.
func (f Func) Run(m *ir.Module) error { return f.Fn(m) }
