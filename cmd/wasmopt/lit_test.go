// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"
)

func TestScanDirectivesSplitsTopLevelForms(t *testing.T) {
	src := `(module (func $f (result i32) (i32.const 1)))
(assert_return (invoke "f") (i32.const 1))`

	directives, err := scanDirectives(strings.NewReader(src))
	if err != nil {
		t.Fatalf("scanDirectives: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("got %d directives, want 2: %#v", len(directives), directives)
	}
	if !strings.HasPrefix(directives[0], "(module") {
		t.Errorf("directives[0] = %q, want module form", directives[0])
	}
	if !strings.HasPrefix(directives[1], "(assert_return") {
		t.Errorf("directives[1] = %q, want assert_return form", directives[1])
	}
}

func TestScanDirectivesIgnoresParensInStrings(t *testing.T) {
	src := `(module (export "f)g" (func 0)))`

	directives, err := scanDirectives(strings.NewReader(src))
	if err != nil {
		t.Fatalf("scanDirectives: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("got %d directives, want 1: %#v", len(directives), directives)
	}
}
