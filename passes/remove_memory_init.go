// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// RemoveMemoryInit clears every data segment and the start-function slot.
// If the former start function exists and is not separately exported, it is
// dropped from the function list too (with every surviving index reference
// remapped); if it is exported, it is left in place, simply no longer
// invoked automatically at instantiation.
type RemoveMemoryInit struct{}

// Name implements pass.Pass.
func (RemoveMemoryInit) Name() string { return pass.NameRemoveMemoryInit }

// Run implements pass.Pass.
func (p RemoveMemoryInit) Run(m *ir.Module) error {
	m.Data = nil

	if !m.HasStart {
		return nil
	}
	startIdx := m.Start
	m.HasStart = false
	m.Start = 0

	exported := false
	for _, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport && exp.Index == startIdx {
			exported = true
			break
		}
	}
	if exported {
		return nil
	}
	if int(startIdx) >= len(m.Functions) {
		return nil
	}

	oldToNew := make(map[uint32]uint32, len(m.Functions)-1)
	kept := make([]*ir.Function, 0, len(m.Functions)-1)
	for oldIdx, fn := range m.Functions {
		if uint32(oldIdx) == startIdx {
			continue
		}
		oldToNew[uint32(oldIdx)] = uint32(len(kept))
		kept = append(kept, fn)
	}
	m.Functions = kept

	for i, exp := range m.Exports {
		if exp.Kind == ir.FunctionImport {
			if newIdx, ok := oldToNew[exp.Index]; ok {
				m.Exports[i].Index = newIdx
			}
		}
	}
	for _, seg := range m.Elements {
		for i, idx := range seg.Funcs {
			if newIdx, ok := oldToNew[idx]; ok {
				seg.Funcs[i] = newIdx
			}
		}
	}
	return nil
}
