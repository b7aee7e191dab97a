// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package printer

import (
	"fmt"
	"io"

	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

// Pretty is a minimal debug dump: one section per module entity, then one
// recursive expression tree per function body. It is not a real language
// backend (it does not round-trip through any textual or binary grammar);
// it backs the decompile command's output and gives tests a readable
// assertion target without hand-writing a WAT string.
type Pretty struct{}

// Print implements Printer.
func (Pretty) Print(w io.Writer, m *ir.Module, opts Options) error {
	store, _ := m.Annotations.(*annotation.Store)
	if !opts.ShowAnnotations {
		store = nil
	}

	fmt.Fprintln(w, "imports:")
	for i, imp := range m.Imports {
		fmt.Fprintf(w, "  [%d] %s.%s (%s)\n", i, imp.Module, imp.Name, kindName(imp.Kind))
	}

	fmt.Fprintln(w, "globals:")
	for i, g := range m.Globals {
		mut := ""
		if g.Mutable {
			mut = " mutable"
		}
		fmt.Fprintf(w, "  [%d] %s: %s%s\n", i, g.Name, g.Type, mut)
	}

	fmt.Fprintln(w, "functions:")
	for i, fn := range m.Functions {
		fmt.Fprintf(w, "  [%d] %s%s -> %s\n", i, fn.Name, paramsString(fn.Params), fn.Results)
		if fn.Body == nil {
			fmt.Fprintln(w, "    (import)")
			continue
		}
		p := &prettyPrinter{w: w, arena: m.Arena, store: store}
		for _, r := range fn.Body {
			p.printExpr(r, 2)
		}
	}

	fmt.Fprintln(w, "exports:")
	for _, exp := range m.Exports {
		fmt.Fprintf(w, "  %s -> %s[%d]\n", exp.Name, kindName(exp.Kind), exp.Index)
	}

	return nil
}

func kindName(k ir.ImportKind) string {
	switch k {
	case ir.FunctionImport:
		return "func"
	case ir.TableImport:
		return "table"
	case ir.MemoryImport:
		return "memory"
	case ir.GlobalImport:
		return "global"
	default:
		return "?"
	}
}

func paramsString(params []types.Type) string {
	s := "("
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

type prettyPrinter struct {
	w     io.Writer
	arena *ir.Arena
	store *annotation.Store
}

func indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
}

func (p *prettyPrinter) printExpr(r ir.ExprRef, depth int) {
	if !r.Valid() {
		return
	}
	e := p.arena.Get(r)
	indent(p.w, depth)

	if p.store != nil {
		if rec := p.store.Get(r); rec != nil && rec.Inlined {
			fmt.Fprintln(p.w, "(inlined)")
			return
		}
	}

	switch e.Kind {
	case ir.KindConst:
		fmt.Fprintf(p.w, "const %s %s\n", e.Type, e.Literal)
	case ir.KindLocalGet:
		fmt.Fprintf(p.w, "local.get %d\n", e.Index)
	case ir.KindLocalSet, ir.KindLocalTee:
		fmt.Fprintf(p.w, "%s %d\n", kindLabel(e.Kind), e.Index)
		p.printExpr(e.A, depth+1)
	case ir.KindGlobalGet:
		fmt.Fprintf(p.w, "global.get %d\n", e.Index)
	case ir.KindGlobalSet:
		fmt.Fprintln(p.w, "global.set", e.Index)
		p.printExpr(e.A, depth+1)
	case ir.KindUnary:
		fmt.Fprintf(p.w, "%s\n", e.Op)
		p.printExpr(e.A, depth+1)
	case ir.KindBinary:
		fmt.Fprintf(p.w, "%s\n", e.Op)
		p.printExpr(e.A, depth+1)
		p.printExpr(e.B, depth+1)
	case ir.KindBlock:
		label := e.Name
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(p.w, "block $%s\n", label)
		for _, c := range e.List {
			p.printExpr(c, depth+1)
		}
	case ir.KindLoop:
		label := e.Name
		if label == "" {
			label = "-"
		}
		loopType := ""
		if p.store != nil {
			if rec := p.store.Get(r); rec != nil && rec.LoopType != annotation.LoopNone {
				loopType = fmt.Sprintf(" (%s)", loopTypeName(rec.LoopType))
			}
		}
		fmt.Fprintf(p.w, "loop $%s%s\n", label, loopType)
		p.printExpr(e.A, depth+1)
	case ir.KindIf:
		fmt.Fprintln(p.w, "if")
		p.printExpr(e.A, depth+1)
		indent(p.w, depth)
		fmt.Fprintln(p.w, "then")
		p.printExpr(e.B, depth+1)
		if e.C.Valid() {
			indent(p.w, depth)
			fmt.Fprintln(p.w, "else")
			p.printExpr(e.C, depth+1)
		}
	case ir.KindBreak:
		fmt.Fprintf(p.w, "br $%s\n", e.Name)
		if e.A.Valid() {
			p.printExpr(e.A, depth+1)
		}
	case ir.KindCall:
		fmt.Fprintf(p.w, "call %s\n", e.Name)
		for _, c := range e.List {
			p.printExpr(c, depth+1)
		}
	case ir.KindReturn:
		fmt.Fprintln(p.w, "return")
		if e.A.Valid() {
			p.printExpr(e.A, depth+1)
		}
	case ir.KindDrop:
		fmt.Fprintln(p.w, "drop")
		p.printExpr(e.A, depth+1)
	case ir.KindUnreachable:
		fmt.Fprintln(p.w, "unreachable")
	case ir.KindNop:
		fmt.Fprintln(p.w, "nop")
	default:
		fmt.Fprintf(p.w, "%s\n", kindLabel(e.Kind))
		for _, c := range e.List {
			p.printExpr(c, depth+1)
		}
		p.printExpr(e.A, depth+1)
		p.printExpr(e.B, depth+1)
		p.printExpr(e.C, depth+1)
	}
}

func kindLabel(k ir.Kind) string {
	switch k {
	case ir.KindLocalSet:
		return "local.set"
	case ir.KindLocalTee:
		return "local.tee"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func loopTypeName(t annotation.LoopType) string {
	switch t {
	case annotation.LoopFor:
		return "for"
	case annotation.LoopWhile:
		return "while"
	case annotation.LoopDoWhile:
		return "do-while"
	default:
		return "?"
	}
}
