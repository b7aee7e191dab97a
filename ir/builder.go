// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ir

import "github.com/mavity/wasmrewire/types"

// Builder is a thin wrapper around a Module's Arena offering constructors
// for the common Expression kinds. Every method returns an
// aliasable ExprRef; two builders sharing a Module's Arena observe each
// other's nodes.
type Builder struct {
	Arena *Arena
}

// NewBuilder returns a Builder over m's arena.
func NewBuilder(m *Module) *Builder {
	return &Builder{Arena: m.Arena}
}

func (b *Builder) emit(e Expression) ExprRef {
	return b.Arena.alloc(e)
}

// Nop builds a Nop expression.
func (b *Builder) Nop() ExprRef {
	return b.emit(Expression{Kind: KindNop, Type: types.None})
}

// Unreachable builds an Unreachable expression.
func (b *Builder) Unreachable() ExprRef {
	return b.emit(Expression{Kind: KindUnreachable, Type: types.Unreachable})
}

// Const builds a constant expression from lit.
func (b *Builder) Const(lit types.Literal) ExprRef {
	return b.emit(Expression{Kind: KindConst, Type: lit.GetType(), Literal: lit})
}

// LocalGet builds a local.get of index, cached with resultType.
func (b *Builder) LocalGet(index uint32, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindLocalGet, Type: resultType, Index: index})
}

// LocalSet builds a local.set of index := value.
func (b *Builder) LocalSet(index uint32, value ExprRef) ExprRef {
	return b.emit(Expression{Kind: KindLocalSet, Type: types.None, Index: index, A: value})
}

// LocalTee builds a local.tee of index := value, yielding value's type.
func (b *Builder) LocalTee(index uint32, value ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindLocalTee, Type: resultType, Index: index, A: value})
}

// GlobalGet builds a global.get of index.
func (b *Builder) GlobalGet(index uint32, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindGlobalGet, Type: resultType, Index: index})
}

// GlobalSet builds a global.set of index := value.
func (b *Builder) GlobalSet(index uint32, value ExprRef) ExprRef {
	return b.emit(Expression{Kind: KindGlobalSet, Type: types.None, Index: index, A: value})
}

// Block builds a (possibly labeled) block containing list, typed resultType.
func (b *Builder) Block(name string, list []ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindBlock, Type: resultType, Name: name, List: list})
}

// If builds an if/then/(else). ifFalse may be the zero ExprRef for no else.
func (b *Builder) If(cond, ifTrue, ifFalse ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindIf, Type: resultType, A: cond, B: ifTrue, C: ifFalse})
}

// Loop builds a (possibly labeled) loop around body.
func (b *Builder) Loop(name string, body ExprRef) ExprRef {
	return b.emit(Expression{Kind: KindLoop, Type: types.None, Name: name, A: body})
}

// Break builds a branch to name, with optional condition (br_if) and value.
func (b *Builder) Break(name string, cond, value ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindBreak, Type: resultType, Name: name, A: cond, B: value})
}

// Call builds a direct call to target with operands, yielding resultType.
func (b *Builder) Call(target string, operands []ExprRef, isReturn bool, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindCall, Type: resultType, Name: target, List: operands, IsReturn: isReturn})
}

// CallIndirect builds an indirect call through tableIdx at the given index
// expression, checked against signature sig.
func (b *Builder) CallIndirect(tableIdx uint32, sig types.Type, indexExpr ExprRef, operands []ExprRef, isReturn bool, resultType types.Type) ExprRef {
	return b.emit(Expression{
		Kind: KindCallIndirect, Type: resultType, TableIdx: tableIdx, TypeArg: sig,
		A: indexExpr, List: operands, IsReturn: isReturn,
	})
}

// Return builds a return, optionally yielding value.
func (b *Builder) Return(value ExprRef) ExprRef {
	return b.emit(Expression{Kind: KindReturn, Type: types.Unreachable, A: value})
}

// Drop builds a drop of value.
func (b *Builder) Drop(value ExprRef) ExprRef {
	return b.emit(Expression{Kind: KindDrop, Type: types.None, A: value})
}

// Select builds a select among ifTrue/ifFalse guarded by cond.
func (b *Builder) Select(cond, ifTrue, ifFalse ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindSelect, Type: resultType, A: cond, B: ifTrue, C: ifFalse})
}

// Unary builds a unary operator application.
func (b *Builder) Unary(op Op, value ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindUnary, Type: resultType, Op: op, A: value})
}

// Binary builds a binary operator application.
func (b *Builder) Binary(op Op, left, right ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindBinary, Type: resultType, Op: op, A: left, B: right})
}

// Load builds a memory load of width bytes (signed iff extending a narrower
// load to a wider result), at offset/align, through pointer ptr.
func (b *Builder) Load(bytes uint8, signed bool, offset, align uint32, ptr ExprRef, resultType types.Type) ExprRef {
	return b.emit(Expression{
		Kind: KindLoad, Type: resultType, Bytes: bytes, Signed: signed,
		Offset: offset, Align: align, A: ptr,
	})
}

// Store builds a memory store of width bytes at offset/align, through
// pointer ptr, writing value.
func (b *Builder) Store(bytes uint8, offset, align uint32, ptr, value ExprRef) ExprRef {
	return b.emit(Expression{
		Kind: KindStore, Type: types.None, Bytes: bytes,
		Offset: offset, Align: align, A: ptr, B: value,
	})
}

// RefNull builds a null reference of the given heap type.
func (b *Builder) RefNull(heap types.HeapType, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindRefNull, Type: resultType, Heap: heap})
}

// RefFunc builds a reference to function name.
func (b *Builder) RefFunc(name string, resultType types.Type) ExprRef {
	return b.emit(Expression{Kind: KindRefFunc, Type: resultType, Name: name})
}

// DeepClone copies the subtree rooted at r into the same arena, returning a
// handle to the new root. Children are cloned recursively in List and field
// order so the clone shares no ExprRef with the original.
func (b *Builder) DeepClone(r ExprRef) ExprRef {
	if !r.Valid() {
		return r
	}
	src := *b.Arena.Get(r)
	dst := src
	dst.A = b.DeepClone(src.A)
	dst.B = b.DeepClone(src.B)
	dst.C = b.DeepClone(src.C)
	if src.List != nil {
		dst.List = make([]ExprRef, len(src.List))
		for i, c := range src.List {
			dst.List[i] = b.DeepClone(c)
		}
	}
	return b.emit(dst)
}
