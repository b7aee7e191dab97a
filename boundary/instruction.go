// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package boundary

// Opcode is a placeholder for the Wasm binary opcode byte a real encoder
// would assign each instruction. It is not wired to any encoding table;
// Instruction below exists only to show the collaborator shape a Writer
// implementation would encode against, not to implement one.
type Opcode uint8

// Instruction is the shape a binary encoder's instruction stream would
// walk: an opcode plus its immediate operands. Kept as a reference
// collaborator type, not a real encoder, per this package's scope.
type Instruction interface {
	Op() Opcode
	ImmediateArgs() []interface{}
}

// NoImmediateArgs is embedded by instructions that carry no operands.
type NoImmediateArgs struct{}

// ImmediateArgs implements Instruction.
func (NoImmediateArgs) ImmediateArgs() []interface{} { return nil }

// Placeholder opcodes for the three illustrative instructions below. A real
// encoder would define the full Wasm opcode table here instead.
const (
	OpI32Const Opcode = iota
	OpI64Const
	OpI32Eqz
)

// I32Const is the i32.const instruction.
type I32Const struct {
	Value int32
}

// Op implements Instruction.
func (I32Const) Op() Opcode { return OpI32Const }

// ImmediateArgs implements Instruction.
func (i I32Const) ImmediateArgs() []interface{} { return []interface{}{i.Value} }

// I64Const is the i64.const instruction.
type I64Const struct {
	Value int64
}

// Op implements Instruction.
func (I64Const) Op() Opcode { return OpI64Const }

// ImmediateArgs implements Instruction.
func (i I64Const) ImmediateArgs() []interface{} { return []interface{}{i.Value} }

// I32Eqz is the i32.eqz instruction.
type I32Eqz struct {
	NoImmediateArgs
}

// Op implements Instruction.
func (I32Eqz) Op() Opcode { return OpI32Eqz }
