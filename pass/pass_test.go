// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package pass

import (
	"errors"
	"testing"

	"github.com/mavity/wasmrewire/ir"
)

func TestRunnerRunsPassesInOrder(t *testing.T) {
	r := NewRunner(nil)
	var order []string
	r.Add(Func{FuncName: "a", Fn: func(*ir.Module) error {
		order = append(order, "a")
		return nil
	}})
	r.Add(Func{FuncName: "b", Fn: func(*ir.Module) error {
		order = append(order, "b")
		return nil
	}})

	m := ir.NewModule(ir.NewArena())
	if err := r.Run(m); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("execution order = %v, want [a b]", order)
	}
}

func TestRunnerStopsAtFirstError(t *testing.T) {
	r := NewRunner(nil)
	boom := errors.New("boom")
	ran := false
	r.Add(Func{FuncName: "fails", Fn: func(*ir.Module) error { return boom }})
	r.Add(Func{FuncName: "never", Fn: func(*ir.Module) error {
		ran = true
		return nil
	}})

	m := ir.NewModule(ir.NewArena())
	err := r.Run(m)
	if err == nil {
		t.Fatal("Run returned nil error, want the wrapped failure")
	}
	if ran {
		t.Error("second pass ran after the first failed, want the runner to stop")
	}
}

func TestRunToFixpointStopsWhenModuleStopsChanging(t *testing.T) {
	m := ir.NewModule(ir.NewArena())

	calls := 0
	shrink := Func{FuncName: "shrink-once", Fn: func(m *ir.Module) error {
		calls++
		return nil
	}}
	r := NewRunner(nil)
	r.Add(shrink)

	if err := RunToFixpoint(r, m, 5); err != nil {
		t.Fatalf("RunToFixpoint: %v", err)
	}
	// The module never changes across rounds (no pass here mutates it), so
	// the digest after the first round equals the initial digest and the
	// loop exits after exactly 1 round.
	if calls == 0 {
		t.Fatal("RunToFixpoint never ran the pass list")
	}
	if calls > 5 {
		t.Errorf("RunToFixpoint ran %d rounds, want at most maxRounds=5", calls)
	}
}

func TestRegistryBuildRunnerResolvesNamesInOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("first", func() Pass {
		return Func{FuncName: "first", Fn: func(*ir.Module) error { return nil }}
	})
	reg.Register("second", func() Pass {
		return Func{FuncName: "second", Fn: func(*ir.Module) error { return nil }}
	})

	runner, err := reg.BuildRunner([]string{"second", "first"})
	if err != nil {
		t.Fatalf("BuildRunner: %v", err)
	}
	passes := runner.Passes()
	if len(passes) != 2 || passes[0].Name() != "second" || passes[1].Name() != "first" {
		t.Fatalf("Passes() = %v, want [second first]", passes)
	}
}

func TestRegistryNewUnknownNameErrors(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.New("nonexistent"); err == nil {
		t.Fatal("New(nonexistent) = nil error, want an error")
	}
}

func TestDefaultOptimizationPassesLevelsAreCumulative(t *testing.T) {
	o1 := DefaultOptimizationPasses(O1(), nil)
	o2 := DefaultOptimizationPasses(O2(), nil)
	o3 := DefaultOptimizationPasses(O3(), nil)

	if len(o2) <= len(o1) {
		t.Errorf("len(O2 passes)=%d, want more than len(O1 passes)=%d", len(o2), len(o1))
	}
	if len(o3) <= len(o2) {
		t.Errorf("len(O3 passes)=%d, want more than len(O2 passes)=%d", len(o3), len(o2))
	}
	if got := DefaultOptimizationPasses(O0(), []string{"custom"}); len(got) != 1 || got[0] != "custom" {
		t.Errorf("O0 appended passes, want the input list %v to pass through unchanged, got %v", []string{"custom"}, got)
	}
}

func TestOzStripsNamesInsteadOfMinifying(t *testing.T) {
	oz := DefaultOptimizationPasses(Oz(), nil)
	os := DefaultOptimizationPasses(Os(), nil)

	if !containsName(oz, NameStripNames) {
		t.Errorf("Oz passes = %v, want %q", oz, NameStripNames)
	}
	if containsName(oz, NameMinifyNames) {
		t.Errorf("Oz passes = %v, want no %q", oz, NameMinifyNames)
	}
	if !containsName(os, NameMinifyNames) {
		t.Errorf("Os passes = %v, want %q", os, NameMinifyNames)
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
