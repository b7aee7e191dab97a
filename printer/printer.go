// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package printer defines the contract a text backend implements to render
// a module. Only the contract lives here — a WAT emitter, a C-like
// decompiled-source emitter, or a Rust-like one are all deliberately out of
// scope for this toolkit; Pretty in this package is a debugging aid, not one
// of those backends.
package printer

import (
	"io"

	"github.com/mavity/wasmrewire/ir"
)

// Options controls what optional detail a Printer includes.
type Options struct {
	// ShowAnnotations includes decompiler annotation facts (loop shape,
	// inferred booleans/pointers, inlined expressions) alongside the raw IR
	// when the module carries an *annotation.Store worth consulting.
	ShowAnnotations bool
}

// Printer renders a module to text. Concrete backends (WAT, decompiled
// source) implement this; only Pretty, a minimal debug dump, ships here.
type Printer interface {
	Print(w io.Writer, m *ir.Module, opts Options) error
}
