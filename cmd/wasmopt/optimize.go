// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/mavity/wasmrewire/logging"
	"github.com/mavity/wasmrewire/pass"
)

// optimizeParams holds optimize's flags. The -O0..-O4/-Os/-Oz flags are
// modeled as long boolean flags rather than wasm-opt's bespoke "-O2"-style
// single-dash tokens: cobra/pflag shorthands are single runes, so
// reproducing that exact surface would mean hand-rolling argv scanning
// ahead of cobra, which is out of scope here (the CLI's business logic is a
// non-goal, its flag plumbing is not).
type optimizeParams struct {
	o0, o1, o2, o3, o4 bool
	os, oz             bool
	shrinkLevel        int
	debug              bool
	format             string
	extraPasses        []string
}

var configuredOptimizeParams optimizeParams

var optimizeCommand = &cobra.Command{
	Use:   "optimize <input> <output>",
	Short: "Run the optimization pass pipeline over a Wasm module",
	Long:  "optimize reads a Wasm module, resolves an optimization level into a named pass list, runs it, and writes the result.",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runOptimize(args[0], args[1], &configuredOptimizeParams)
	},
}

func (p *optimizeParams) level() pass.OptimizationOptions {
	switch {
	case p.oz:
		return pass.Oz()
	case p.os:
		return pass.Os()
	case p.o4:
		return pass.O4()
	case p.o3:
		return pass.O3()
	case p.o2:
		return pass.O2()
	case p.o1:
		return pass.O1()
	default:
		return pass.O0()
	}
}

func runOptimize(inputPath, outputPath string, p *optimizeParams) error {
	if p.debug {
		log.SetLevel(logging.Debug)
	}

	opts := p.level()
	opts.Shrink += p.shrinkLevel
	opts.Debug = p.debug

	names := pass.DefaultOptimizationPasses(opts, nil)
	names = append(names, p.extraPasses...)

	runner, err := newRunner(names)
	if err != nil {
		return err
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	m, err := readModule(p.format, in, featureOptionsFromFlags)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{"passes": len(runner.Passes())}).Info("running optimization pipeline")
	if err := runner.Run(m); err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(out)

	return writeModule(p.format, out, m)
}

// featureOptionsFromFlags is set by init once optimize's feature flags are bound;
// declared here so runOptimize can reference it before the flag set exists.
var featureOptionsFromFlags *featureOptions

func init() {
	flags := optimizeCommand.Flags()
	flags.BoolVar(&configuredOptimizeParams.o0, "O0", false, "no optimization (default)")
	flags.BoolVar(&configuredOptimizeParams.o1, "O1", false, "light simplification and dead-code elimination")
	flags.BoolVar(&configuredOptimizeParams.o2, "O2", false, "O1 plus inlining and local CSE")
	flags.BoolVar(&configuredOptimizeParams.o3, "O3", false, "O2 plus duplicate-function elimination and SSA-based type refinement")
	flags.BoolVar(&configuredOptimizeParams.o4, "O4", false, "O3 plus GUFA and i64-to-i32 lowering")
	flags.BoolVar(&configuredOptimizeParams.os, "Os", false, "optimize for size")
	flags.BoolVar(&configuredOptimizeParams.oz, "Oz", false, "optimize aggressively for size")
	flags.CountVarP(&configuredOptimizeParams.shrinkLevel, "shrink-level", "S", "increase the shrink level (repeatable); adds to -Os/-Oz's own shrink level")
	flags.BoolVar(&configuredOptimizeParams.debug, "debug", false, "enable debug-level logging")
	flags.StringVar(&configuredOptimizeParams.format, "format", "wasm", "input/output format: wasm or wat")
	flags.StringSliceVar(&configuredOptimizeParams.extraPasses, "passes", nil, "additional pass names to append after the optimization level's own list")
	featureOptionsFromFlags = addFeatureFlags(flags)

	RootCommand.AddCommand(optimizeCommand)
}
