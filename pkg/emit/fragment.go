package emit

import (
	"fmt"
	"strings"
)

// Fragment is a node in the intermediate source tree built during a render.
// Fragments are immutable once appended to a parent; the only exceptions are
// the Sequence currently accepting writes and the most recent NewlineMarker,
// whose indentation delta stays adjustable until the render is finalized.
type Fragment interface {
	fragment()
}

// Atom holds a literal run of text with no line breaks of its own.
type Atom struct {
	Text string
}

// Sequence is an ordered list of child fragments.
type Sequence struct {
	children []Fragment
}

// Children returns the ordered child fragments.
func (s *Sequence) Children() []Fragment {
	return s.children
}

func (s *Sequence) append(f Fragment) {
	s.children = append(s.children, f)
}

// Table records an ordered grid of fragment cells. Rows may have differing
// lengths. Column alignment is left to later consumers of the frozen tree;
// the flattened text joins cells with a single space.
type Table struct {
	Rows [][]Fragment
}

// Annotated wraps a subtree with out-of-band metadata. The annotation never
// changes the rendered text of the wrapped region.
type Annotated struct {
	Tag  Annotation
	Body Fragment
}

// NamePlaceholder stands in for a symbolic name whose textual identifier is
// not known until name assignment runs.
type NamePlaceholder struct {
	Name *Name
}

// NewlineMarker terminates a line and carries the signed indentation delta
// applied starting at the following line. One level is four columns.
type NewlineMarker struct {
	delta int
}

// Delta returns the signed indentation delta recorded on the marker.
func (m *NewlineMarker) Delta() int {
	return m.delta
}

func (*Atom) fragment()            {}
func (*Sequence) fragment()        {}
func (*Table) fragment()           {}
func (*Annotated) fragment()       {}
func (*NamePlaceholder) fragment() {}
func (*NewlineMarker) fragment()   {}

// Annotation tags a region of output with metadata for later consumers.
type Annotation struct {
	Kind   string
	Detail string
}

// AnnotationIssue marks a region whose content reflects an ambiguous or
// unresolved generation decision. The region renders normally; consumers can
// surface warnings or strip it.
const AnnotationIssue = "issue"

// Text builds a literal fragment.
func Text(s string) Fragment {
	return &Atom{Text: s}
}

// Textf builds a literal fragment from a format string.
func Textf(format string, args ...any) Fragment {
	return &Atom{Text: fmt.Sprintf(format, args...)}
}

// Placeholder builds a fragment that resolves to the assigned string for name
// when the tree is flattened.
func Placeholder(name *Name) Fragment {
	return &NamePlaceholder{Name: name}
}

// Group joins fragments into one node, useful for composite table cells or
// line content assembled ahead of emission.
func Group(fragments ...Fragment) Fragment {
	seq := &Sequence{}
	for _, f := range fragments {
		if f == nil {
			continue
		}
		seq.append(f)
	}
	return seq
}

// Walk visits every fragment in the tree rooted at f in document order.
func Walk(f Fragment, visit func(Fragment)) {
	if f == nil {
		return
	}
	visit(f)
	switch node := f.(type) {
	case *Sequence:
		for _, child := range node.children {
			Walk(child, visit)
		}
	case *Annotated:
		Walk(node.Body, visit)
	case *Table:
		for _, row := range node.Rows {
			for _, cell := range row {
				Walk(cell, visit)
			}
		}
	}
}

const indentUnit = "    "

// flattener materializes a frozen tree into final text. Indentation is the
// running sum of marker deltas from the start of the tree, four columns per
// level, written lazily so blank lines carry no trailing spaces.
type flattener struct {
	b       strings.Builder
	names   *NameAssignment
	level   int
	started bool
}

func flatten(root Fragment, names *NameAssignment) string {
	f := &flattener{names: names}
	f.walk(root)
	return f.b.String()
}

func (f *flattener) walk(node Fragment) {
	switch n := node.(type) {
	case nil:
	case *Atom:
		f.text(n.Text)
	case *NamePlaceholder:
		if f.names == nil {
			contractViolation("flatten", "name placeholder reached finalize without a name assignment")
		}
		f.text(f.names.StringOf(n.Name))
	case *NewlineMarker:
		f.b.WriteByte('\n')
		f.level += n.delta
		f.started = false
	case *Sequence:
		for _, child := range n.children {
			f.walk(child)
		}
	case *Annotated:
		f.walk(n.Body)
	case *Table:
		for i, row := range n.Rows {
			if i > 0 {
				f.b.WriteByte('\n')
				f.started = false
			}
			for j, cell := range row {
				if j > 0 {
					f.text(" ")
				}
				f.walk(cell)
			}
		}
	default:
		contractViolation("flatten", "unknown fragment type %T", node)
	}
}

func (f *flattener) text(s string) {
	if s == "" {
		return
	}
	if !f.started {
		if f.level > 0 {
			f.b.WriteString(strings.Repeat(indentUnit, f.level))
		}
		f.started = true
	}
	f.b.WriteString(s)
}
