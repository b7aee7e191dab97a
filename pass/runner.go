// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package pass

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mavity/wasmrewire/analysis"
	"github.com/mavity/wasmrewire/ir"
)

// Runner executes an ordered list of Passes over one Module, generalizing
// the teacher's fixed compiler.stages sequential-stage loop into a
// caller-ordered, name-resolved list.
type Runner struct {
	passes []Pass
	log    logrus.FieldLogger
}

// NewRunner returns a Runner with an empty pass list. log may be nil, in
// which case Run is silent.
func NewRunner(log logrus.FieldLogger) *Runner {
	return &Runner{log: log}
}

// Add appends p to the runner's ordered pass list.
func (r *Runner) Add(p Pass) *Runner {
	r.passes = append(r.passes, p)
	return r
}

// Passes returns the runner's ordered pass list.
func (r *Runner) Passes() []Pass {
	return r.passes
}

// Run executes every registered pass against m in order, stopping at and
// returning the first error. Each pass's own Name() is attached to a
// propagated error for diagnosability.
func (r *Runner) Run(m *ir.Module) error {
	for _, p := range r.passes {
		if r.log != nil {
			r.log.WithField("pass", p.Name()).Debug("running pass")
		}
		if err := p.Run(m); err != nil {
			return errors.Wrapf(err, "pass %q", p.Name())
		}
	}
	return nil
}

// RunToFixpoint repeatedly runs the full pass list until a round makes no
// further changes to m's deep hash, or maxRounds is reached, so that passes
// like OptimizeInstructions and Precompute can unlock each other across
// rounds. The optimize command does not use it: it runs its pass list once.
func RunToFixpoint(r *Runner, m *ir.Module, maxRounds int) error {
	prev := moduleDigest(m)
	for i := 0; i < maxRounds; i++ {
		if err := r.Run(m); err != nil {
			return err
		}
		cur := moduleDigest(m)
		if cur == prev {
			return nil
		}
		prev = cur
	}
	return nil
}

// moduleDigest fingerprints every function body's actual content (not just
// its ExprRef shape), since a pass like OptimizeInstructions mutates an
// Expression in place without changing which ExprRef owns it.
func moduleDigest(m *ir.Module) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	const prime = 1099511628211
	for _, fn := range m.Functions {
		h ^= analysis.DeepHashBody(m.Arena, fn.Body)
		h *= prime
	}
	return h
}
