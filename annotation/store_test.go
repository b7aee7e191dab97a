// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package annotation

import "testing"

func TestGetOnUnrecordedRefReturnsNil(t *testing.T) {
	s := NewStore()
	if got := s.Get(7); got != nil {
		t.Errorf("Get(unrecorded) = %+v, want nil", got)
	}
}

func TestSettersMergeOntoTheSameRecord(t *testing.T) {
	s := NewStore()
	s.SetLoopType(1, LoopFor)
	s.SetVariableRole(1, RoleLoopIndex)
	s.SetLocalName(1, "i")

	rec := s.Get(1)
	if rec == nil {
		t.Fatal("Get(1) = nil after three Set calls, want a merged Record")
	}
	if rec.LoopType != LoopFor {
		t.Errorf("LoopType = %v, want LoopFor", rec.LoopType)
	}
	if rec.VariableRole != RoleLoopIndex {
		t.Errorf("VariableRole = %v, want RoleLoopIndex", rec.VariableRole)
	}
	if rec.LocalName != "i" {
		t.Errorf("LocalName = %q, want \"i\"", rec.LocalName)
	}
}

func TestSetIfInfoRecordsInversion(t *testing.T) {
	s := NewStore()
	s.SetIfInfo(2, IfInfo{Condition: 9, Inverted: true})

	rec := s.Get(2)
	if rec == nil || rec.IfInfo == nil {
		t.Fatal("Get(2).IfInfo = nil, want a recorded IfInfo")
	}
	if rec.IfInfo.Condition != 9 || !rec.IfInfo.Inverted {
		t.Errorf("IfInfo = %+v, want {Condition:9 Inverted:true}", rec.IfInfo)
	}
}

func TestSetInlinedValueMarksInlinedAndValue(t *testing.T) {
	s := NewStore()
	s.SetInlinedValue(3, 42)

	rec := s.Get(3)
	if rec == nil || !rec.Inlined {
		t.Fatal("Inlined = false after SetInlinedValue, want true")
	}
	if rec.InlinedValue != 42 {
		t.Errorf("InlinedValue = %v, want 42", rec.InlinedValue)
	}
}

func TestResetClearsEveryRecord(t *testing.T) {
	s := NewStore()
	s.SetLocalName(1, "x")
	s.Reset()
	if got := s.Get(1); got != nil {
		t.Errorf("Get(1) after Reset = %+v, want nil", got)
	}
}
