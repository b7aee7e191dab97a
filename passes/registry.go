// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import "github.com/mavity/wasmrewire/pass"

// NewRegistry returns a pass.Registry with every pass in this package bound
// under its canonical pass.NameXxx constant, the set pass.DefaultOptimizationPasses
// draws its name lists from.
func NewRegistry() *pass.Registry {
	r := pass.NewRegistry()

	r.Register(pass.NameOptimizeInstructions, func() pass.Pass { return OptimizeInstructions{} })
	r.Register(pass.NamePrecompute, func() pass.Pass { return NewPrecompute() })
	r.Register(pass.NamePrecomputePropagate, func() pass.Pass { return PrecomputePropagate{} })
	r.Register(pass.NameDCE, func() pass.Pass { return DCE{} })
	r.Register(pass.NameUntee, func() pass.Pass { return Untee{} })
	r.Register(pass.NameMergeBlocks, func() pass.Pass { return MergeBlocks{} })
	r.Register(pass.NameAvoidReinterprets, func() pass.Pass { return AvoidReinterprets{} })
	r.Register(pass.NameOptimizeCasts, func() pass.Pass { return OptimizeCasts{} })
	r.Register(pass.NamePickLoadSigns, func() pass.Pass { return PickLoadSigns{} })
	r.Register(pass.NameLocalCSE, func() pass.Pass { return LocalCSE{} })
	r.Register(pass.NameInlining, func() pass.Pass { return Inlining{} })
	r.Register(pass.NameDuplicateFunctionElimination, func() pass.Pass { return DuplicateFunctionElimination{} })
	r.Register(pass.NameReorderTypes, func() pass.Pass { return ReorderTypes{} })
	r.Register(pass.NameReorderGlobals, func() pass.Pass { return ReorderGlobals{} })
	r.Register(pass.NameReorderLocals, func() pass.Pass { return ReorderLocals{} })
	r.Register(pass.NameReorderFunctions, func() pass.Pass { return ReorderFunctions{} })
	r.Register(pass.NameRemoveUnusedTypes, func() pass.Pass { return RemoveUnusedTypes{} })
	r.Register(pass.NameRemoveUnusedElements, func() pass.Pass { return RemoveUnusedElements{} })
	r.Register(pass.NameRemoveMemoryInit, func() pass.Pass { return RemoveMemoryInit{} })
	r.Register(pass.NameFlatten, func() pass.Pass { return Flatten{} })
	r.Register(pass.NameLICM, func() pass.Pass { return LICM{} })
	r.Register(pass.NameRSE, func() pass.Pass { return RSE{} })
	r.Register(pass.NameCodePushing, func() pass.Pass { return CodePushing{} })
	r.Register(pass.NameMergeLocals, func() pass.Pass { return MergeLocals{} })
	r.Register(pass.NameGUFA, func() pass.Pass { return GUFA{} })
	r.Register(pass.NameLocalSubtyping, func() pass.Pass { return LocalSubtyping{} })
	r.Register(pass.NameGlobalRefining, func() pass.Pass { return GlobalRefining{} })
	r.Register(pass.NameTypeSSA, func() pass.Pass { return TypeSSA{} })
	r.Register(pass.NameI64ToI32Lowering, func() pass.Pass { return I64ToI32Lowering{} })
	r.Register(pass.NameMinifyNames, func() pass.Pass { return MinifyNames{} })
	r.Register(pass.NameStripNames, func() pass.Pass { return StripNames{} })

	return r
}
