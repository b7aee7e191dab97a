// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// RemoveUnusedTypes drops any import whose declared signature type has a
// zero reference count in analysis.Stats.TypeRefs. Signature handles
// themselves live in the process-wide types.Store and are never freed (the
// store is a monotonic intern table), so this pass' only observable effect
// at this IR layer is pruning dead signature-only imports; a future binary
// encoder would additionally omit the type from its type section.
type RemoveUnusedTypes struct{}

// Name implements pass.Pass.
func (RemoveUnusedTypes) Name() string { return pass.NameRemoveUnusedTypes }

// Run implements pass.Pass.
func (p RemoveUnusedTypes) Run(m *ir.Module) error {
	stats := analysis.BuildStats(m)

	kept := m.Imports[:0:0]
	for _, imp := range m.Imports {
		if imp.Kind != ir.FunctionImport {
			kept = append(kept, imp)
			continue
		}
		if id, ok := imp.Type.SignatureID(); ok {
			if stats.TypeRefs[id] == 0 {
				continue
			}
		}
		kept = append(kept, imp)
	}
	m.Imports = kept
	return nil
}
