// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package pass

// Canonical pass names, shared between the default pass-list builder here
// and each pass's own Name() in package passes.
const (
	NameOptimizeInstructions         = "optimize-instructions"
	NamePrecompute                   = "precompute"
	NamePrecomputePropagate          = "precompute-propagate"
	NameDCE                          = "dce"
	NameUntee                       = "untee"
	NameMergeBlocks                  = "merge-blocks"
	NameAvoidReinterprets            = "avoid-reinterprets"
	NameOptimizeCasts                = "optimize-casts"
	NamePickLoadSigns                = "pick-load-signs"
	NameLocalCSE                     = "local-cse"
	NameInlining                     = "inlining"
	NameDuplicateFunctionElimination = "duplicate-function-elimination"
	NameReorderTypes                 = "reorder-types"
	NameReorderGlobals               = "reorder-globals"
	NameReorderLocals                = "reorder-locals"
	NameReorderFunctions             = "reorder-functions"
	NameRemoveUnusedTypes            = "remove-unused-types"
	NameRemoveUnusedElements         = "remove-unused-elements"
	NameRemoveMemoryInit             = "remove-memory-init"
	NameFlatten                      = "flatten"
	NameLICM                         = "licm"
	NameRSE                          = "rse"
	NameCodePushing                  = "code-pushing"
	NameMergeLocals                  = "merge-locals"
	NameGUFA                         = "gufa"
	NameLocalSubtyping               = "local-subtyping"
	NameGlobalRefining               = "global-refining"
	NameTypeSSA                      = "type-ssa"
	NameI64ToI32Lowering             = "i64-to-i32-lowering"
	NameMinifyNames                  = "minify-names"
	NameStripNames                   = "strip-names"
)

// OptimizationOptions selects the optimizer's overall aggressiveness, the
// same two-axis scheme as wasm-opt: a speed-oriented Level 0-4 and a
// size-oriented Shrink 0-2 (Os == Level 2/Shrink 1, Oz == Level 2/Shrink 2
// by convention of the two helper constructors below).
type OptimizationOptions struct {
	Level  int // 0..4
	Shrink int // 0..2
	Debug  bool
}

// O0 performs no optimization at all.
func O0() OptimizationOptions { return OptimizationOptions{Level: 0} }

// O1 requests light simplification plus dead-code elimination.
func O1() OptimizationOptions { return OptimizationOptions{Level: 1} }

// O2 adds inlining and local CSE on top of O1.
func O2() OptimizationOptions { return OptimizationOptions{Level: 2} }

// O3 adds duplicate-function elimination and SSA-based type refinement on
// top of O2.
func O3() OptimizationOptions { return OptimizationOptions{Level: 3} }

// O4 adds GUFA and the illustrative I64ToI32Lowering transform on top of
// O3.
func O4() OptimizationOptions { return OptimizationOptions{Level: 4} }

// Os biases toward smaller output: reordering and name minification on top
// of O2-equivalent simplification.
func Os() OptimizationOptions { return OptimizationOptions{Level: 2, Shrink: 1} }

// Oz is Os with StripNames instead of MinifyNames, the most aggressive
// shrink mode.
func Oz() OptimizationOptions { return OptimizationOptions{Level: 2, Shrink: 2} }

// DefaultOptimizationPasses appends the canonical pass-name sequence for
// opts to an existing list (so callers may prepend custom passes first),
// and returns the result.
//
// O0 appends nothing. O1 appends light simplification (OptimizeInstructions,
// Precompute, Untee, MergeBlocks) plus DCE. O2 adds PrecomputePropagate,
// LocalCSE and Inlining. O3 adds DuplicateFunctionElimination, the
// cast/reinterpret/load-sign cleanups, the SSA-based refinement passes
// (LocalSubtyping, GlobalRefining, TypeSSA), and the foundation-only
// restructuring passes (Flatten, LICM, RSE, CodePushing, MergeLocals). O4
// additionally runs GUFA and I64ToI32Lowering. A positive Shrink level
// appends the reordering passes, RemoveUnusedTypes, RemoveUnusedElements,
// and RemoveMemoryInit, then either MinifyNames (Shrink 1) or StripNames
// (Shrink 2).
func DefaultOptimizationPasses(opts OptimizationOptions, names []string) []string {
	if opts.Level <= 0 {
		return names
	}

	names = append(names,
		NameOptimizeInstructions,
		NamePrecompute,
		NameUntee,
		NameMergeBlocks,
		NameDCE,
	)

	if opts.Level >= 2 {
		names = append(names,
			NamePrecomputePropagate,
			NameLocalCSE,
			NameInlining,
		)
	}

	if opts.Level >= 3 {
		names = append(names,
			NameAvoidReinterprets,
			NameOptimizeCasts,
			NamePickLoadSigns,
			NameDuplicateFunctionElimination,
			NameLocalSubtyping,
			NameGlobalRefining,
			NameTypeSSA,
			NameFlatten,
			NameLICM,
			NameRSE,
			NameCodePushing,
			NameMergeLocals,
		)
	}

	if opts.Level >= 4 {
		names = append(names,
			NameGUFA,
			NameI64ToI32Lowering,
		)
	}

	if opts.Shrink > 0 {
		names = append(names,
			NameReorderTypes,
			NameReorderGlobals,
			NameReorderLocals,
			NameReorderFunctions,
			NameRemoveUnusedTypes,
			NameRemoveUnusedElements,
			NameRemoveMemoryInit,
		)
		if opts.Shrink >= 2 {
			names = append(names, NameStripNames)
		} else {
			names = append(names, NameMinifyNames)
		}
	}

	return names
}
