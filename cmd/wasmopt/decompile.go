// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/mavity/wasmrewire/decompile"
	"github.com/mavity/wasmrewire/printer"
)

var decompileCommand = &cobra.Command{
	Use:   "decompile <input.wasm> <output>",
	Short: "Lift a Wasm binary's high-level shape and print it",
	Long: "decompile reads a Wasm binary, runs the decompiler lifter's annotation " +
		"passes over its IR, and prints the result with annotations shown. A " +
		"C-like source backend is out of scope for this toolkit (see the printer " +
		"package doc); this command prints through printer.Pretty, the " +
		"printer package's annotation-aware debug dump, instead.",
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runDecompile(args[0], args[1])
	},
}

var decompileFeatures *featureOptions

func runDecompile(inputPath, outputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	m, err := readModule("wasm", in, decompileFeatures)
	if err != nil {
		return err
	}

	decompile.Lift(m)

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(out)

	var p printer.Pretty
	return p.Print(out, m, printer.Options{ShowAnnotations: true})
}

func init() {
	decompileFeatures = addFeatureFlags(decompileCommand.Flags())
	RootCommand.AddCommand(decompileCommand)
}
