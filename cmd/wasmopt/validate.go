// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mavity/wasmrewire/validate"
)

var validateCommand = &cobra.Command{
	Use:   "validate <input.wasm>",
	Short: "Run the light structural validator over a module",
	Long:  "validate runs validate.Validate's read-only structural checks and reports every finding; it is not a replacement for an authoritative Wasm validator.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

var validateFeatures *featureOptions

func runValidate(inputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	m, err := readModule("wasm", in, validateFeatures)
	if err != nil {
		return err
	}

	ok, errs := validate.Validate(m)
	if !ok {
		fmt.Println(errs)
		return errors.New("validation failed")
	}
	fmt.Println("ok")
	return nil
}

func init() {
	validateFeatures = addFeatureFlags(validateCommand.Flags())
	RootCommand.AddCommand(validateCommand)
}
