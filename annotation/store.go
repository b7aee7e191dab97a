// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package annotation implements the per-expression side table the
// decompiler lifter uses to attach semantic facts to IR nodes
// without mutating the tree itself.
package annotation

import "github.com/mavity/wasmrewire/ir"

// LoopType classifies a structured Loop's shape.
type LoopType uint8

// Loop shapes identified by IdentifyLoops.
const (
	LoopNone LoopType = iota
	LoopFor
	LoopWhile
	LoopDoWhile
)

// HighLevelType classifies a decompiled expression's inferred surface type.
type HighLevelType uint8

// High-level types identified by IdentifyBooleans/IdentifyPointers.
const (
	HighLevelNone HighLevelType = iota
	HighLevelBool
	HighLevelPointer
)

// VariableRole classifies the role IdentifyLoops/IdentifyPointers infers for
// a local variable.
type VariableRole uint8

// Variable roles.
const (
	RoleNone VariableRole = iota
	RoleLoopIndex
	RoleBasePointer
)

// IfInfo records the condition driving a recovered if/else: Inverted is true when the block's natural branch is the
// "else" arm, because the source shape was `br_if $L cond` (jump out on
// true) rather than a direct `if cond`.
type IfInfo struct {
	Condition ir.ExprRef
	Inverted  bool
}

// DebugLocation records a source position recovered from debug info.
type DebugLocation struct {
	File   string
	Line   int
	Column int
}

// Record holds every optional annotation facet for one expression.
type Record struct {
	LoopType      LoopType
	HighLevelType HighLevelType
	VariableRole  VariableRole
	LocalName     string
	IfInfo        *IfInfo
	Inlined       bool
	InlinedValue  ir.ExprRef
	DebugLocation *DebugLocation
}

// Store is the annotation side table for one Module: ExprRef -> Record.
type Store struct {
	records map[ir.ExprRef]*Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[ir.ExprRef]*Record)}
}

// Reset clears every recorded annotation. Implements ir.AnnotationStore.
func (s *Store) Reset() {
	s.records = make(map[ir.ExprRef]*Record)
}

func (s *Store) entry(r ir.ExprRef) *Record {
	if s.records == nil {
		s.records = make(map[ir.ExprRef]*Record)
	}
	rec, ok := s.records[r]
	if !ok {
		rec = &Record{}
		s.records[r] = rec
	}
	return rec
}

// Get returns the Record for r, or nil if nothing has been recorded yet.
func (s *Store) Get(r ir.ExprRef) *Record {
	if s.records == nil {
		return nil
	}
	return s.records[r]
}

// SetLoopType merges a LoopType annotation onto r.
func (s *Store) SetLoopType(r ir.ExprRef, t LoopType) { s.entry(r).LoopType = t }

// SetHighLevelType merges a HighLevelType annotation onto r.
func (s *Store) SetHighLevelType(r ir.ExprRef, t HighLevelType) { s.entry(r).HighLevelType = t }

// SetVariableRole merges a VariableRole annotation onto r.
func (s *Store) SetVariableRole(r ir.ExprRef, role VariableRole) { s.entry(r).VariableRole = role }

// SetLocalName merges a LocalName annotation onto r.
func (s *Store) SetLocalName(r ir.ExprRef, name string) { s.entry(r).LocalName = name }

// SetIfInfo merges an IfInfo annotation onto r.
func (s *Store) SetIfInfo(r ir.ExprRef, info IfInfo) { s.entry(r).IfInfo = &info }

// SetInlined marks r (expected to be a LocalSet/Tee) as elided by the
// printer; its value is instead substituted at the paired get via
// SetInlinedValue.
func (s *Store) SetInlined(r ir.ExprRef) { s.entry(r).Inlined = true }

// SetInlinedValue marks r (expected to be a LocalGet) to be replaced at
// print time by the expression value.
func (s *Store) SetInlinedValue(r, value ir.ExprRef) {
	rec := s.entry(r)
	rec.Inlined = true
	rec.InlinedValue = value
}

// SetDebugLocation merges a DebugLocation annotation onto r.
func (s *Store) SetDebugLocation(r ir.ExprRef, loc DebugLocation) {
	s.entry(r).DebugLocation = &loc
}
