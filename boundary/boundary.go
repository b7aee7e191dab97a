// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package boundary defines the contracts this toolkit's external
// collaborators implement: a Wasm binary reader/writer and a WAT text
// reader/writer. No concrete parser or encoder lives here — per this
// module's design, the binary and text grammars are out of scope; only the
// interface shape a real implementation would satisfy is specified, plus a
// name -> constructor Registry a CLI can consult once one exists.
package boundary

import (
	"io"

	"github.com/mavity/wasmrewire/ir"
)

// Reader parses bytes from r into a fresh Module bound to a new Arena.
// Concrete implementations: a Wasm binary decoder, a WAT text parser.
type Reader interface {
	Read(r io.Reader, features ir.FeatureSet) (*ir.Module, error)
}

// Writer serializes m to w. Concrete implementations: a Wasm binary
// encoder, a WAT text printer.
type Writer interface {
	Write(w io.Writer, m *ir.Module) error
}

// ReaderFactory and WriterFactory build a fresh Reader/Writer, the shape
// Registry's constructor map expects.
type (
	ReaderFactory func() Reader
	WriterFactory func() Writer
)

// Registry resolves a format name ("wasm", "wat") to its Reader/Writer
// constructors. It ships empty: registering a concrete codec is the
// responsibility of whatever external collaborator implements one.
type Registry struct {
	readers map[string]ReaderFactory
	writers map[string]WriterFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]ReaderFactory),
		writers: make(map[string]WriterFactory),
	}
}

// RegisterReader adds a Reader constructor under name.
func (reg *Registry) RegisterReader(name string, f ReaderFactory) {
	reg.readers[name] = f
}

// RegisterWriter adds a Writer constructor under name.
func (reg *Registry) RegisterWriter(name string, f WriterFactory) {
	reg.writers[name] = f
}

// Reader returns the Reader registered under name, or false if none is.
func (reg *Registry) Reader(name string) (Reader, bool) {
	f, ok := reg.readers[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Writer returns the Writer registered under name, or false if none is.
func (reg *Registry) Writer(name string) (Writer, bool) {
	f, ok := reg.writers[name]
	if !ok {
		return nil, false
	}
	return f(), true
}
