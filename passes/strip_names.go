// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
)

// StripNames goes further than MinifyNames: functions still need a unique
// Name (it is this IR's call-target key, not just a debug label) so those
// get the same base-26 treatment, but globals/memories/tables are addressed
// purely by index, so their Name field is cleared outright. Block/Loop
// labels are left alone even though they look like names: a Break resolves
// its target by walking enclosing scopes innermost-first and matching on
// Name (see resolveBreakTarget in analysis/cfg.go), so blanking two nested
// labels to the same empty string would silently redirect a Break to the
// wrong scope.
type StripNames struct{}

// Name implements pass.Pass.
func (StripNames) Name() string { return pass.NameStripNames }

// Run implements pass.Pass.
func (p StripNames) Run(m *ir.Module) error {
	rename := buildShortNames(m, "")
	applyRename(m, rename)

	for _, g := range m.Globals {
		g.Name = ""
	}
	for _, mem := range m.Memories {
		mem.Name = ""
	}
	for _, t := range m.Tables {
		t.Name = ""
	}
	return nil
}
