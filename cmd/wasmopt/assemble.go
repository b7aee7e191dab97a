// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import "github.com/spf13/cobra"

var assembleCommand = &cobra.Command{
	Use:   "assemble <input.wat> <output.wasm>",
	Short: "Assemble WAT text into a Wasm binary",
	Long:  "assemble reads WAT text, parses it into the IR, and writes the equivalent Wasm binary with no optimization passes applied.",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAssemble(args[0], args[1])
	},
}

var assembleFeatures *featureOptions

func runAssemble(inputPath, outputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	m, err := readModule("wat", in, assembleFeatures)
	if err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(out)

	return writeModule("wasm", out, m)
}

func init() {
	assembleFeatures = addFeatureFlags(assembleCommand.Flags())
	RootCommand.AddCommand(assembleCommand)
}
