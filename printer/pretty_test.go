// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mavity/wasmrewire/annotation"
	"github.com/mavity/wasmrewire/ir"
	"github.com/mavity/wasmrewire/types"
)

func TestPrettyPrintIncludesEveryModuleSection(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	m.AddGlobal(&ir.Global{Name: "g", Type: types.I32})
	one := b.Const(types.I32Lit(1))
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{one}})
	m.ExportFunction("f", 0)

	var buf bytes.Buffer
	if err := (Pretty{}).Print(&buf, m, Options{}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"imports:", "globals:", "functions:", "exports:", "f -> func[0]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestPrettyPrintShowsInlinedAnnotationWhenRequested(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	lit := b.Const(types.I32Lit(5))
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{lit}})

	store := annotation.NewStore()
	store.SetInlined(lit)
	m.Annotations = store

	var buf bytes.Buffer
	if err := (Pretty{}).Print(&buf, m, Options{ShowAnnotations: true}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "(inlined)") {
		t.Errorf("output did not show the inlined annotation, got:\n%s", buf.String())
	}
}

func TestPrettyPrintOmitsAnnotationsWhenNotRequested(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule(a)
	b := ir.NewBuilder(m)

	lit := b.Const(types.I32Lit(5))
	m.AddFunction(&ir.Function{Name: "f", Results: types.I32, Body: []ir.ExprRef{lit}})

	store := annotation.NewStore()
	store.SetInlined(lit)
	m.Annotations = store

	var buf bytes.Buffer
	if err := (Pretty{}).Print(&buf, m, Options{ShowAnnotations: false}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if strings.Contains(buf.String(), "(inlined)") {
		t.Errorf("output showed the inlined annotation despite ShowAnnotations=false, got:\n%s", buf.String())
	}
}
