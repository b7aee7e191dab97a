// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/spf13/pflag"

	"github.com/mavity/wasmrewire/ir"
)

// featureFlags is the name -> bit table every --enable-FOO/--disable-FOO
// pair is generated from, in the order spec.md's feature bitfield lists
// them.
var featureFlags = []struct {
	name string
	bit  ir.FeatureSet
}{
	{"threads", ir.FeatureThreads},
	{"mutable-globals", ir.FeatureMutableGlobals},
	{"nontrapping-float-to-int", ir.FeatureNontrappingFloatToInt},
	{"simd", ir.FeatureSIMD},
	{"bulk-memory", ir.FeatureBulkMemory},
	{"sign-ext", ir.FeatureSignExt},
	{"exception-handling", ir.FeatureExceptionHandling},
	{"tail-call", ir.FeatureTailCall},
	{"reference-types", ir.FeatureReferenceTypes},
	{"multivalue", ir.FeatureMultivalue},
	{"gc", ir.FeatureGC},
	{"memory64", ir.FeatureMemory64},
	{"relaxed-simd", ir.FeatureRelaxedSIMD},
	{"extended-const", ir.FeatureExtendedConst},
	{"strings", ir.FeatureStrings},
	{"multimemory", ir.FeatureMultimemory},
	{"stack-switching", ir.FeatureStackSwitching},
	{"shared-everything", ir.FeatureSharedEverything},
	{"fp16", ir.FeatureFP16},
}

// featureOptions holds the per-feature enable/disable switches and the
// --all-features toggle a command's flag set is bound to.
type featureOptions struct {
	enable      map[string]*bool
	disable     map[string]*bool
	allFeatures bool
}

// addFeatureFlags registers one --enable-FOO/--disable-FOO pair per known
// feature plus --all-features, and returns the options they write into.
func addFeatureFlags(flags *pflag.FlagSet) *featureOptions {
	opts := &featureOptions{
		enable:  make(map[string]*bool, len(featureFlags)),
		disable: make(map[string]*bool, len(featureFlags)),
	}
	for _, f := range featureFlags {
		var enable, disable bool
		flags.BoolVar(&enable, "enable-"+f.name, false, "enable the "+f.name+" Wasm feature")
		flags.BoolVar(&disable, "disable-"+f.name, false, "disable the "+f.name+" Wasm feature")
		opts.enable[f.name] = &enable
		opts.disable[f.name] = &disable
	}
	flags.BoolVar(&opts.allFeatures, "all-features", false, "enable every known Wasm feature")
	return opts
}

// resolve starts from ir.DefaultFeatures (or ir.AllFeatures if --all-features
// was passed) and applies every --enable-FOO/--disable-FOO override in flag
// declaration order, so a feature named on both sides ends up disabled.
func (o *featureOptions) resolve() ir.FeatureSet {
	set := ir.DefaultFeatures
	if o.allFeatures {
		set = ir.AllFeatures
	}
	for _, f := range featureFlags {
		if *o.enable[f.name] {
			set |= f.bit
		}
		if *o.disable[f.name] {
			set &^= f.bit
		}
	}
	return set
}

// featureNames returns every known feature name, sorted, for --help text and
// error messages that need to list them.
func featureNames() []string {
	names := make([]string, len(featureFlags))
	for i, f := range featureFlags {
		names[i] = f.name
	}
	sort.Strings(names)
	return names
}
