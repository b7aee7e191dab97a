// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mavity/wasmrewire/ir"
)

// readModule resolves a Reader for format and parses src into a Module. If
// no Reader is registered, it returns a descriptive error rather than
// panicking or silently producing an empty module: the binary/WAT grammars
// are external collaborators this toolkit defines the contract for but does
// not ship an implementation of.
func readModule(format string, src io.Reader, features *featureOptions) (*ir.Module, error) {
	reader, ok := boundaryRegistry.Reader(format)
	if !ok {
		return nil, errors.Errorf("no boundary.Reader registered for format %q (register one via boundaryRegistry.RegisterReader before invoking wasmopt, or pass --format wasm/wat once a codec exists)", format)
	}
	fs := ir.DefaultFeatures
	if features != nil {
		fs = features.resolve()
	}
	m, err := reader.Read(src, fs)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q input", format)
	}
	return m, nil
}

// writeModule resolves a Writer for the Module's own natural format ("wasm"
// for binary output, "wat" for text) and serializes m to dst.
func writeModule(format string, dst io.Writer, m *ir.Module) error {
	writer, ok := boundaryRegistry.Writer(format)
	if !ok {
		return errors.Errorf("no boundary.Writer registered for format %q", format)
	}
	if err := writer.Write(dst, m); err != nil {
		return errors.Wrapf(err, "write %q output", format)
	}
	return nil
}
