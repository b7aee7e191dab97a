// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package validate implements a light, read-only structural check over a
// module: the kind of sanity pass a debugging aid runs before or after an
// optimization pipeline, not an authoritative bytecode verifier. It never
// panics on malformed input — every problem it finds is accumulated into a
// MultiError and returned to the caller, mirroring the accumulate-then-join
// error style the rest of this toolkit's compiler-shaped packages use.
package validate

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
	"github.com/mavity/wasmrewire/visitor"
)

// MultiError collects every problem a Validate run found. A nil *MultiError
// (via Err) means the module passed every check.
type MultiError struct {
	Errors []error
}

func (m *MultiError) add(format string, args ...interface{}) {
	m.Errors = append(m.Errors, errors.Errorf(format, args...))
}

// Error implements error, joining every collected message with a newline.
func (m *MultiError) Error() string {
	lines := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns m as an error if it collected anything, or nil otherwise, the
// usual accumulate-then-return-nil-if-empty convention.
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// Validate runs every structural check against m and returns the combined
// result: ok is true exactly when errs is nil.
func Validate(m *ir.Module) (ok bool, errs error) {
	v := &validator{m: m, errs: &MultiError{}}
	v.run()
	err := v.errs.Err()
	return err == nil, err
}

type validator struct {
	m    *ir.Module
	errs *MultiError
}

func (v *validator) run() {
	for _, fn := range v.m.Functions {
		if fn.Body == nil {
			continue
		}
		v.checkFunction(fn)
	}
	v.checkExports()
}

func (v *validator) checkFunction(fn *ir.Function) {
	checker := visitor.Func(func(a *ir.Arena, _ ir.ExprRef, e *ir.Expression) {
		switch e.Kind {
		case ir.KindBinary:
			v.checkBinary(a, fn, e)
		case ir.KindGlobalGet:
			v.checkGlobalIndex(fn, e, false)
		case ir.KindGlobalSet:
			v.checkGlobalIndex(fn, e, true)
		case ir.KindCall:
			v.checkCallTarget(fn, e)
		}
	})
	for _, r := range fn.Body {
		visitor.Visit(checker, v.m.Arena, r)
	}
	v.checkReturnType(fn)
}

// checkBinary flags operand types that disagree, unless either side is the
// unreachable sentinel (a subtree that never completes unifies with
// anything, the same rule this IR uses elsewhere — see Expression.IsTerminating).
func (v *validator) checkBinary(a *ir.Arena, fn *ir.Function, e *ir.Expression) {
	left, right := a.Get(e.A), a.Get(e.B)
	if left.Type == types.Unreachable || right.Type == types.Unreachable {
		return
	}
	if left.Type != right.Type {
		v.errs.add("function %q: %s operand type mismatch: %s vs %s",
			fn.Name, e.Op, left.Type, right.Type)
	}
}

func (v *validator) checkGlobalIndex(fn *ir.Function, e *ir.Expression, isSet bool) {
	if int(e.Index) >= len(v.m.Globals) {
		v.errs.add("function %q: global index %d out of range (%d globals)",
			fn.Name, e.Index, len(v.m.Globals))
		return
	}
	g := v.m.Globals[e.Index]
	if isSet && !g.Mutable {
		v.errs.add("function %q: set on immutable global %q (index %d)", fn.Name, g.Name, e.Index)
	}
}

func (v *validator) checkCallTarget(fn *ir.Function, e *ir.Expression) {
	if _, ok := v.m.GetFunctionIndex(e.Name); !ok {
		v.errs.add("function %q: call target %q not present in module", fn.Name, e.Name)
	}
}

// checkReturnType verifies the function body's tail expression agrees with
// its declared Results type, allowing an unreachable tail (a body that
// always traps or branches away never needs to produce a value).
func (v *validator) checkReturnType(fn *ir.Function) {
	if len(fn.Body) == 0 {
		if fn.Results != types.None {
			v.errs.add("function %q: empty body but declared result %s", fn.Name, fn.Results)
		}
		return
	}
	last := v.m.Arena.Get(fn.Body[len(fn.Body)-1])
	if last.Type == types.Unreachable {
		return
	}
	if last.Type != fn.Results {
		v.errs.add("function %q: body type %s incompatible with declared result %s",
			fn.Name, last.Type, fn.Results)
	}
}

func (v *validator) checkExports() {
	for _, exp := range v.m.Exports {
		switch exp.Kind {
		case ir.FunctionImport:
			if int(exp.Index) >= len(v.m.Functions) {
				v.errs.add("export %q: function index %d out of range", exp.Name, exp.Index)
			}
		case ir.GlobalImport:
			if int(exp.Index) >= len(v.m.Globals) {
				v.errs.add("export %q: global index %d out of range", exp.Name, exp.Index)
			}
		case ir.TableImport:
			if int(exp.Index) >= len(v.m.Tables) {
				v.errs.add("export %q: table index %d out of range", exp.Name, exp.Index)
			}
		case ir.MemoryImport:
			if int(exp.Index) >= len(v.m.Memories) {
				v.errs.add("export %q: memory index %d out of range", exp.Name, exp.Index)
			}
		}
	}
}
