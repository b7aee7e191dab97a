// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command wasmopt is the CLI surface over this toolkit's tools:
// an assembler, a disassembler, an optimizer, a decompiler, a
// lit adapter for WAST directive streams, and a validator. None of these tools parse or
// encode Wasm binary or WAT text themselves (those grammars are an external
// collaborator's responsibility); wasmopt resolves a boundary.Reader/Writer
// pair by format name from a registry that ships empty, so every command
// here is fully wired except for the codec itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mavity/wasmrewire/boundary"
	"github.com/mavity/wasmrewire/logging"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/passes"
)

// RootCommand is the base wasmopt command; each command file's init adds
// its subcommand here, the teacher's cmd/parse.go pattern.
var RootCommand = &cobra.Command{
	Use:   "wasmopt",
	Short: "WebAssembly optimizer and decompiler toolkit",
	Long:  "wasmopt parses a Wasm module, runs a configurable pass pipeline over its IR, and emits an optimized module or a decompiled reconstruction.",
}

// passRegistry resolves a pass name to a fresh pass.Pass instance; shared by
// every command that accepts a --passes list.
var passRegistry = passes.NewRegistry()

// boundaryRegistry resolves a format name to a boundary.Reader/Writer.
// It ships empty (see package doc): registering "wasm" and "wat" codecs is
// left to whatever external collaborator implements the binary/WAT
// grammars; until one is registered, commands that need to parse or encode
// report a clear "no reader/writer registered" error instead of silently
// doing nothing.
var boundaryRegistry = boundary.NewRegistry()

// log is the CLI's leveled logger; optimize's --debug flag raises it to
// logging.Debug.
var log logging.Logger = logging.New()

func main() {
	if err := RootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRunner builds a pass.Runner over passRegistry resolving every name in
// names, in order.
func newRunner(names []string) (*pass.Runner, error) {
	runner, err := passRegistry.BuildRunner(names)
	if err != nil {
		return nil, err
	}
	return runner, nil
}
