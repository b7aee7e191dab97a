// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ir

import "github.com/mavity/wasmrewire/types"

// ImportKind tags which entity kind an Import or Export refers to.
type ImportKind uint8

// Import/export entity kinds.
const (
	FunctionImport ImportKind = iota
	TableImport
	MemoryImport
	GlobalImport
)

// Import represents one imported entity.
type Import struct {
	Module, Name string
	Kind         ImportKind
	Type         types.Type // signature for functions, value type for globals
	Mutable      bool       // globals only
}

// Export maps a name to an entity kind+index.
type Export struct {
	Name  string
	Kind  ImportKind
	Index uint32
}

// Function is one module-defined function: its signature (Params/Results),
// its additional local variables (Vars), and its optional body. A function
// with a nil Body is an import-declared stub that still occupies a slot in
// Module.Functions so that call-target indices stay stable.
type Function struct {
	Name    string
	Params  []types.Type
	Results types.Type // None, a basic Type, or a tuple handle
	Vars    []types.Type
	Body    []ExprRef
	Import  bool
}

// NumLocals returns the count of params+vars, the universe that
// LocalGet/Set/Tee indices must stay below.
func (f *Function) NumLocals() int {
	return len(f.Params) + len(f.Vars)
}

// LocalType returns the declared Type of local index i.
func (f *Function) LocalType(i uint32) types.Type {
	if int(i) < len(f.Params) {
		return f.Params[i]
	}
	return f.Vars[int(i)-len(f.Params)]
}

// Global is one module-defined global.
type Global struct {
	Name    string
	Type    types.Type
	Mutable bool
	Init    ExprRef
	Import  bool
}

// Memory describes one linear memory's limits.
type Memory struct {
	Name    string
	Min     uint32
	Max     uint32
	HasMax  bool
	Shared  bool
	Import  bool
}

// Table describes one reference table's limits and element type.
type Table struct {
	Name    string
	Elem    types.Type
	Min     uint32
	Max     uint32
	HasMax  bool
	Import  bool
}

// ElementSegment is an active or passive table initializer.
type ElementSegment struct {
	Table    uint32
	Offset   ExprRef // nil for passive segments
	Passive  bool
	Funcs    []uint32
	Dropped  bool
}

// DataSegment is an active or passive memory initializer.
type DataSegment struct {
	Memory  uint32
	Offset  ExprRef // nil for passive segments
	Passive bool
	Init    []byte
	Dropped bool
}

// FeatureSet is the bitfield of enabled Wasm proposals a Reader decodes
// against and a Writer/validator checks instructions fall within.
type FeatureSet uint32

// Feature bits. The default set enables SignExt|MutableGlobals; AllFeatures
// enables every flag.
const (
	FeatureThreads FeatureSet = 1 << iota
	FeatureMutableGlobals
	FeatureNontrappingFloatToInt
	FeatureSIMD
	FeatureBulkMemory
	FeatureSignExt
	FeatureExceptionHandling
	FeatureTailCall
	FeatureReferenceTypes
	FeatureMultivalue
	FeatureGC
	FeatureMemory64
	FeatureRelaxedSIMD
	FeatureExtendedConst
	FeatureStrings
	FeatureMultimemory
	FeatureStackSwitching
	FeatureSharedEverything
	FeatureFP16

	DefaultFeatures = FeatureSignExt | FeatureMutableGlobals
	AllFeatures     = FeatureThreads | FeatureMutableGlobals | FeatureNontrappingFloatToInt |
		FeatureSIMD | FeatureBulkMemory | FeatureSignExt | FeatureExceptionHandling |
		FeatureTailCall | FeatureReferenceTypes | FeatureMultivalue | FeatureGC |
		FeatureMemory64 | FeatureRelaxedSIMD | FeatureExtendedConst | FeatureStrings |
		FeatureMultimemory | FeatureStackSwitching | FeatureSharedEverything | FeatureFP16
)

// Has reports whether f includes feature bit want.
func (f FeatureSet) Has(want FeatureSet) bool { return f&want == want }

// Module owns a bump Arena and every entity of one Wasm module.
// It is mutated in place by passes; dropping it invalidates every ExprRef it
// owned (the Arena is the sole owner of node storage).
type Module struct {
	Arena *Arena

	Imports  []Import
	Functions []*Function
	Globals   []*Global
	Memories  []*Memory
	Tables    []*Table

	Elements []*ElementSegment
	Data     []*DataSegment

	Exports []Export

	Start      uint32
	HasStart   bool

	Features FeatureSet

	Annotations AnnotationStore
}

// AnnotationStore is implemented by the annotation package; Module only
// needs the interface shape so ir does not import annotation (which in turn
// imports ir), avoiding a cycle. See annotation.Store for the concrete type.
type AnnotationStore interface {
	// Reset clears every recorded annotation. Passes that rebuild a module
	// from scratch call this instead of leaking stale ExprRef keys.
	Reset()
}

// NewModule returns an empty Module bound to arena, with the default
// feature set enabled.
func NewModule(arena *Arena) *Module {
	return &Module{
		Arena:    arena,
		Features: DefaultFeatures,
	}
}

// AddFunction appends fn to the module and returns its index.
func (m *Module) AddFunction(fn *Function) uint32 {
	m.Functions = append(m.Functions, fn)
	return uint32(len(m.Functions) - 1)
}

// AddGlobal appends g to the module and returns its index.
func (m *Module) AddGlobal(g *Global) uint32 {
	m.Globals = append(m.Globals, g)
	return uint32(len(m.Globals) - 1)
}

// AddDataSegment appends seg to the module and returns its index.
func (m *Module) AddDataSegment(seg *DataSegment) uint32 {
	m.Data = append(m.Data, seg)
	return uint32(len(m.Data) - 1)
}

// ExportFunction adds a function export by index under name.
func (m *Module) ExportFunction(name string, index uint32) {
	m.Exports = append(m.Exports, Export{Name: name, Kind: FunctionImport, Index: index})
}

// SetStart marks index as the module's start function.
func (m *Module) SetStart(index uint32) {
	m.Start = index
	m.HasStart = true
}

// GetFunction returns the first function named name, or nil. Modules are
// modest in size: lookups happen in passes, not hot paths, so a
// linear scan is an acceptable, deliberately simple implementation.
func (m *Module) GetFunction(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// GetFunctionIndex returns the index of the first function named name, and
// whether one was found.
func (m *Module) GetFunctionIndex(name string) (uint32, bool) {
	for i, fn := range m.Functions {
		if fn.Name == name {
			return uint32(i), true
		}
	}
	return 0, false
}
