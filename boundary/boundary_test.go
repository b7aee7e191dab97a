// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package boundary

import (
	"bytes"
	"io"
	"testing"

	"github.com/mavity/wasmrewire/ir"
)

type stubReader struct{ called ir.FeatureSet }

func (s *stubReader) Read(_ io.Reader, features ir.FeatureSet) (*ir.Module, error) {
	s.called = features
	return ir.NewModule(ir.NewArena()), nil
}

type stubWriter struct{ wrote bool }

func (s *stubWriter) Write(w io.Writer, _ *ir.Module) error {
	s.wrote = true
	_, err := w.Write([]byte("ok"))
	return err
}

func TestRegistryResolvesRegisteredReaderAndWriter(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterReader("wasm", func() Reader { return &stubReader{} })
	reg.RegisterWriter("wasm", func() Writer { return &stubWriter{} })

	r, ok := reg.Reader("wasm")
	if !ok {
		t.Fatal("Reader(wasm) = (_, false), want true")
	}
	m, err := r.Read(bytes.NewReader(nil), ir.FeatureSignExt)
	if err != nil || m == nil {
		t.Fatalf("Read: (%v, %v), want a module and no error", m, err)
	}

	w, ok := reg.Writer("wasm")
	if !ok {
		t.Fatal("Writer(wasm) = (_, false), want true")
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "ok" {
		t.Errorf("Write wrote %q, want \"ok\"", buf.String())
	}
}

func TestRegistryUnregisteredFormatReturnsFalse(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Reader("wat"); ok {
		t.Error("Reader(wat) on empty registry = true, want false")
	}
	if _, ok := reg.Writer("wat"); ok {
		t.Error("Writer(wat) on empty registry = true, want false")
	}
}

func TestInstructionImmediateArgs(t *testing.T) {
	c := I32Const{Value: 42}
	if c.Op() != OpI32Const {
		t.Errorf("I32Const.Op() = %v, want OpI32Const", c.Op())
	}
	args := c.ImmediateArgs()
	if len(args) != 1 || args[0].(int32) != 42 {
		t.Errorf("ImmediateArgs() = %v, want [42]", args)
	}

	eqz := I32Eqz{}
	if args := eqz.ImmediateArgs(); args != nil {
		t.Errorf("I32Eqz.ImmediateArgs() = %v, want nil (NoImmediateArgs)", args)
	}
}
