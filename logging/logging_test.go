// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import "testing"

func TestStandardLoggerSetLevelRoundTrips(t *testing.T) {
	l := New()
	if l.GetLevel() != Info {
		t.Fatalf("New().GetLevel() = %v, want Info", l.GetLevel())
	}
	l.SetLevel(Debug)
	if l.GetLevel() != Debug {
		t.Errorf("GetLevel() after SetLevel(Debug) = %v, want Debug", l.GetLevel())
	}
}

func TestStandardLoggerWithFieldsPreservesLevel(t *testing.T) {
	l := New()
	l.SetLevel(Warn)
	child := l.WithFields(map[string]interface{}{"pass": "dce"})
	if child.GetLevel() != Warn {
		t.Errorf("WithFields(...).GetLevel() = %v, want Warn (inherited)", child.GetLevel())
	}
}

func TestNoOpLoggerDiscardsAndDefaultsToError(t *testing.T) {
	n := NewNoOpLogger()
	if n.GetLevel() != Error {
		t.Errorf("NoOpLogger.GetLevel() = %v, want Error", n.GetLevel())
	}
	// WithFields must return something still satisfying Logger, and keep
	// discarding rather than panicking.
	child := n.WithFields(map[string]interface{}{"x": 1})
	child.Info("anything")
	child.Error("anything")
}
