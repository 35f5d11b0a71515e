package emit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineIndentation(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("type Book struct {"))
		w.Indent()
		w.Line(Text("ID string"))
		w.Outdent()
		w.Line(Text("}"))
	})

	want := "type Book struct {\n    ID string\n}\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestIndentedRestoresLevel(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("a"))
		w.Indented(func() {
			w.Line(Text("b"))
			w.Indented(func() {
				w.Line(Text("c"))
			})
			w.Line(Text("d"))
		})
		w.Line(Text("e"))
	})

	want := "a\n    b\n        c\n    d\ne\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestIndentBeforeFirstLine(t *testing.T) {
	defer wantContractError(t)
	renderSource(t, func(w *Writer) {
		w.Indent()
	})
}

func TestBlankLineDroppedOnEmptyTree(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.BlankLine()
		w.BlankLine()
		w.Line(Text("a"))
	})

	if want := "a\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestBlankLineCollapses(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("a"))
		w.BlankLine()
		w.BlankLine()
		w.BlankLine()
		w.Line(Text("b"))
	})

	if want := "a\n\nb\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestBlankLineUnconsumedAtEnd(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("a"))
		w.BlankLine()
	})

	if want := "a\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestBlankLineBeforeIndentChange(t *testing.T) {
	// The indent recorded between the request and the next line applies to
	// the content line, not the blank separating them.
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("a"))
		w.BlankLine()
		w.Indent()
		w.Line(Text("b"))
	})

	if want := "a\n\n    b\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestMultilineNestedBlock(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Multiline("if ok {\n    for {\n        work()\n    }\n}")
		w.Line(Text("done"))
	})

	want := "if ok {\n    for {\n        work()\n    }\n}\ndone\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestMultilineInsideIndentedRegion(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("func f() {"))
		w.Indent()
		w.Multiline("if ok {\n    work()\n}")
		w.Outdent()
		w.Line(Text("}"))
	})

	want := "func f() {\n    if ok {\n        work()\n    }\n}\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestMultilineBlankLineKeepsLevel(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Multiline("a\n\n    b")
		w.Line(Text("c"))
	})

	want := "a\n\n    b\nc\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestMultilineTabIndentation(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Multiline("a\n\tb\n\t\tc")
	})

	want := "a\n    b\n        c\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestMultilineIrregularIndent(t *testing.T) {
	defer wantContractError(t)
	renderSource(t, func(w *Writer) {
		w.Multiline("a\n  b")
	})
}

func TestSeparatedModes(t *testing.T) {
	items := []string{"a", "b", "c"}

	cases := []struct {
		name string
		mode SeparatorMode
		want string
	}{
		{"none", SeparatorNone, "h\na\nb\nc\n"},
		{"interposed", SeparatorInterposed, "h\na\n\nb\n\nc\n"},
		{"leading", SeparatorLeading, "h\n\na\nb\nc\n"},
		{"both", SeparatorLeadingAndInterposed, "h\n\na\n\nb\n\nc\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := renderSource(t, func(w *Writer) {
				w.Line(Text("h"))
				w.Separated(tc.mode, len(items), func(i int) {
					w.Line(Text(items[i]))
				})
			})
			if src != tc.want {
				t.Fatalf("source = %q, want %q", src, tc.want)
			}
		})
	}
}

func TestSeparatedLeadingDroppedOnEmptyTree(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Separated(SeparatorLeadingAndInterposed, 2, func(i int) {
			w.Line(Text([]string{"a", "b"}[i]))
		})
	})

	if want := "a\n\nb\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestTableFlattening(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("const ("))
		w.Indent()
		w.Table([][]Fragment{
			{Text("A"), Text("="), Text(`"a"`)},
			{Text("LongName"), Text("="), Text(`"long"`)},
		})
		w.Outdent()
		w.Line(Text(")"))
	})

	want := "const (\n    A = \"a\"\n    LongName = \"long\"\n)\n"
	if src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestTablePreservedInTree(t *testing.T) {
	out := renderOutput(t, func(w *Writer) {
		w.Table([][]Fragment{
			{Text("a"), Text("b")},
			{Text("c")},
		})
	})

	var tables []*Table
	Walk(out.Root, func(f Fragment) {
		if table, ok := f.(*Table); ok {
			tables = append(tables, table)
		}
	})
	if len(tables) != 1 {
		t.Fatalf("found %d tables in tree, want 1", len(tables))
	}

	var widths []int
	for _, row := range tables[0].Rows {
		widths = append(widths, len(row))
	}
	if diff := cmp.Diff([]int{2, 1}, widths); diff != "" {
		t.Fatalf("row widths mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotatedRegionRendersTransparently(t *testing.T) {
	out := renderOutput(t, func(w *Writer) {
		w.Line(Text("before"))
		w.Issue("unsupported reference", func() {
			w.Line(Text("inside"))
		})
		w.Line(Text("after"))
	})

	want := "before\ninside\nafter\n"
	if out.Source != want {
		t.Fatalf("source = %q, want %q", out.Source, want)
	}
	if diff := cmp.Diff([]string{"unsupported reference"}, out.Issues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotatedRegionsNest(t *testing.T) {
	out := renderOutput(t, func(w *Writer) {
		w.Issue("outer", func() {
			w.Line(Text("a"))
			w.Issue("inner", func() {
				w.Line(Text("b"))
			})
		})
		w.Line(Text("c"))
	})

	if want := "a\nb\nc\n"; out.Source != want {
		t.Fatalf("source = %q, want %q", out.Source, want)
	}
	if diff := cmp.Diff([]string{"outer", "inner"}, out.Issues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotatedRegionKeepsIndentation(t *testing.T) {
	src := renderSource(t, func(w *Writer) {
		w.Line(Text("a"))
		w.Indent()
		w.Issue("detail", func() {
			w.Line(Text("b"))
		})
		w.Outdent()
		w.Line(Text("c"))
	})

	if want := "a\n    b\nc\n"; src != want {
		t.Fatalf("source = %q, want %q", src, want)
	}
}

func TestBlankLineFlushedOutsideAnnotatedRegion(t *testing.T) {
	out := renderOutput(t, func(w *Writer) {
		w.Line(Text("a"))
		w.BlankLine()
		w.Issue("detail", func() {
			w.Line(Text("b"))
		})
	})

	if want := "a\n\nb\n"; out.Source != want {
		t.Fatalf("source = %q, want %q", out.Source, want)
	}

	// Stripping the region must not take the separating blank with it.
	var region *Annotated
	Walk(out.Root, func(f Fragment) {
		if a, ok := f.(*Annotated); ok {
			region = a
		}
	})
	if region == nil {
		t.Fatalf("annotated region missing from tree")
	}
	marks := 0
	Walk(region.Body, func(f Fragment) {
		if _, ok := f.(*NewlineMarker); ok {
			marks++
		}
	})
	if marks != 1 {
		t.Fatalf("annotated region holds %d newline markers, want 1", marks)
	}
}

func TestWriteAfterFinalize(t *testing.T) {
	var captured *Writer
	renderOutput(t, func(w *Writer) {
		captured = w
		w.Line(Text("a"))
	})

	defer wantContractError(t)
	captured.Line(Text("b"))
}
