// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ir

import "github.com/mavity/wasmrewire/types"

// Kind tags the variant an Expression holds. The set below is the "minimum
// viable set": every Wasm instruction family the IR needs to
// represent, collapsed onto a small, fixed set of generic fields on
// Expression rather than one Go struct per kind, so that every node fits in
// one Arena slot and can be mutated in place through any alias of its
// ExprRef.
type Kind uint8

// Expression kinds.
const (
	KindInvalid Kind = iota
	KindNop
	KindUnreachable
	KindConst
	KindLocalGet
	KindLocalSet
	KindLocalTee
	KindGlobalGet
	KindGlobalSet
	KindBlock
	KindIf
	KindLoop
	KindBreak
	KindSwitch
	KindCall
	KindCallIndirect
	KindReturn
	KindDrop
	KindSelect
	KindUnary
	KindBinary
	KindLoad
	KindStore
	KindMemorySize
	KindMemoryGrow
	KindMemoryInit
	KindMemoryFill
	KindMemoryCopy
	KindDataDrop
	KindTableGet
	KindTableSet
	KindTableSize
	KindTableGrow
	KindTableFill
	KindTableCopy
	KindTableInit
	KindElemDrop
	KindAtomicRMW
	KindAtomicCmpxchg
	KindAtomicWait
	KindAtomicNotify
	KindRefNull
	KindRefFunc
	KindRefIsNull
	KindStructNew
	KindStructGet
	KindStructSet
	KindArrayNew
	KindArrayGet
	KindArraySet
	KindArrayLen
	KindTry
)

// Expression is one node of the per-module expression graph. Field usage by
// Kind (undocumented fields are unused for that kind):
//
//	Const            Literal, Type
//	LocalGet         Index, Type
//	LocalSet/Tee     Index, A=value, Type
//	GlobalGet        Index, Type
//	GlobalSet        Index, A=value
//	Block            Name (optional label), List=body, Type
//	If               A=condition, B=if_true, C=if_false (optional), Type
//	Loop             Name (optional label), A=body
//	Break            Name=target, A=condition (optional), B=value (optional)
//	Switch           A=condition/index, Name=default (no field holds the other target labels)
//	Call             Name=target, List=operands, IsReturn, Type
//	CallIndirect     TableIdx, TypeArg=signature, A=target index, List=operands, IsReturn
//	Return           A=value (optional)
//	Drop             A=value
//	Select           A=condition, B=if_true, C=if_false
//	Unary            Op, A=value, Type
//	Binary           Op, A=left, B=right, Type
//	Load             Bytes, Signed, Offset, Align, A=ptr, Type
//	Store            Bytes, Offset, Align, A=ptr, B=value
//	MemorySize/Grow  A=delta (Grow only), Type
//	MemoryInit       Index=segment, A=dest, B=src, C=len
//	MemoryFill/Copy  A,B,C
//	DataDrop         Index=segment
//	TableGet/Set     TableIdx, A=index, B=value (Set only)
//	Table{Size,Grow} TableIdx, A=delta/value (Grow)
//	TableFill        TableIdx, A=index, B=value, C=len
//	TableCopy        TableIdx (dest), Index (src), A,B,C
//	TableInit        TableIdx, Index=segment, A,B,C
//	ElemDrop         Index=segment
//	AtomicRMW        Op, Bytes, Offset, Align, A=ptr, B=value
//	AtomicCmpxchg    Bytes, Offset, Align, A=ptr, B=expected, C=replacement
//	AtomicWait       Bytes, A=ptr, B=expected, C=timeout
//	AtomicNotify     A=ptr, B=count
//	RefNull          Heap
//	RefFunc          Name=func
//	RefIsNull        A=value
//	StructNew        TypeArg, List=field values
//	StructGet        TypeArg, Index=field, A=ref
//	StructSet        TypeArg, Index=field, A=ref, B=value
//	ArrayNew         TypeArg, A=size, B=init (optional)
//	ArrayGet         TypeArg, A=ref, B=index
//	ArraySet         TypeArg, A=ref, B=index, C=value
//	ArrayLen         A=ref
//	Try              List=body, HasDelegate, Delegate=label
type Expression struct {
	Kind Kind
	Type types.Type

	A, B, C ExprRef
	List    []ExprRef

	Name     string
	Index    uint32
	TableIdx uint32
	TypeArg  types.Type
	Heap     types.HeapType

	Op      Op
	Literal types.Literal

	Offset, Align uint32
	Bytes         uint8
	Signed        bool

	IsReturn    bool
	HasDelegate bool
	Delegate    string
}

// IsTerminating reports whether this expression always transfers control
// away rather than falling through (used by DCE's unreachable-tail rule). A
// well-formed expression's cached Type is Unreachable exactly when it (or
// one of its children) unconditionally terminates, so Type is the single
// source of truth here: an unconditional Break's Type is Unreachable, but a
// conditional br_if's Type is not, since control may fall through.
func (e *Expression) IsTerminating() bool {
	return e.Type == types.Unreachable
}
