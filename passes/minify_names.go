// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/pass"
	"github.com/mavity/wasmrewire/visitor"
)

// MinifyNames assigns every module-defined (non-import) function a short,
// unique base-26 name, in original-index order, then rewrites every Call
// and RefFunc target plus the Global initializer references that name any
// renamed function. Export names are untouched: an Export names a function
// by index, not by Function.Name, so the public API surface is unaffected.
type MinifyNames struct{}

// Name implements pass.Pass.
func (MinifyNames) Name() string { return pass.NameMinifyNames }

// Run implements pass.Pass.
func (p MinifyNames) Run(m *ir.Module) error {
	rename := buildShortNames(m, "")
	applyRename(m, rename)
	return nil
}

// buildShortNames generates a stable base-26 name per non-import function
// (prefix lets StripNames reuse the same generator with a different,
// empty-looking alphabet position if ever needed; MinifyNames passes "").
func buildShortNames(m *ir.Module, prefix string) map[string]string {
	rename := make(map[string]string, len(m.Functions))
	used := make(map[string]bool, len(m.Functions))
	for _, fn := range m.Functions {
		if fn.Import {
			used[fn.Name] = true
		}
	}

	next := 0
	for _, fn := range m.Functions {
		if fn.Import {
			continue
		}
		var short string
		for {
			short = prefix + base26(next)
			next++
			if !used[short] {
				break
			}
		}
		used[short] = true
		rename[fn.Name] = short
	}
	return rename
}

// base26 renders n as a base-26 string over 'a'..'z', the shortest-name
// convention minifiers use (0 -> "a", 25 -> "z", 26 -> "aa", ...).
func base26(n int) string {
	if n < 0 {
		n = 0
	}
	digits := []byte{byte('a' + n%26)}
	n /= 26
	for n > 0 {
		n--
		digits = append([]byte{byte('a' + n%26)}, digits...)
		n /= 26
	}
	return string(digits)
}

func applyRename(m *ir.Module, rename map[string]string) {
	for _, fn := range m.Functions {
		if newName, ok := rename[fn.Name]; ok {
			fn.Name = newName
		}
	}

	fix := visitor.Func(func(_ *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		if e.Kind != ir.KindCall && e.Kind != ir.KindRefFunc {
			return
		}
		if newName, ok := rename[e.Name]; ok {
			e.Name = newName
		}
	})
	for _, fn := range m.Functions {
		for _, r := range fn.Body {
			visitor.Visit(fix, m.Arena, r)
		}
	}
	for _, g := range m.Globals {
		if g.Init.Valid() {
			visitor.Visit(fix, m.Arena, g.Init)
		}
	}
}
