// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import "github.com/spf13/cobra"

var disassembleCommand = &cobra.Command{
	Use:   "disassemble <input.wasm> <output.wat>",
	Short: "Disassemble a Wasm binary into WAT text",
	Long:  "disassemble reads a Wasm binary, parses it into the IR, and writes the equivalent WAT text with no optimization passes applied.",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runDisassemble(args[0], args[1])
	},
}

var disassembleFeatures *featureOptions

func runDisassemble(inputPath, outputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	m, err := readModule("wasm", in, disassembleFeatures)
	if err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(out)

	return writeModule("wat", out, m)
}

func init() {
	disassembleFeatures = addFeatureFlags(disassembleCommand.Flags())
	RootCommand.AddCommand(disassembleCommand)
}
