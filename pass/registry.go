// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package pass

import "fmt"

// Factory constructs a fresh Pass instance. Passes with internal state
// (e.g. a cache) must not be shared across Runners; Registry hands out a
// new instance per lookup.
type Factory func() Pass

// Registry maps a pass name to the Factory that builds it, the generalized
// form of the teacher's name-keyed dispatch tables (builtinsFunctions
// map[string]string in compiler/wasm).
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds name to factory. Registering the same name twice replaces
// the earlier binding.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// New constructs a fresh Pass instance for name.
func (r *Registry) New(name string) (Pass, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("pass: no pass registered under name %q", name)
	}
	return factory(), nil
}

// Names returns every registered pass name.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}

// BuildRunner constructs a Runner with one fresh Pass per name in names, in
// order, resolved through r.
func (r *Registry) BuildRunner(names []string) (*Runner, error) {
	runner := NewRunner(nil)
	for _, name := range names {
		p, err := r.New(name)
		if err != nil {
			return nil, err
		}
		runner.Add(p)
	}
	return runner, nil
}
