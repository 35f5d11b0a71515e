package emit

import "strings"

// Writer is the build context for one render. It owns the fragment tree, the
// write-target stack discipline for annotated regions, and the arena of
// newline markers whose deltas drive indentation. A Writer is single-use and
// single-goroutine; the renderer freezes it after emission.
type Writer struct {
	root   *Sequence
	target *Sequence

	// marks is the arena of newline markers in creation order. Only the most
	// recent marker's delta is still mutable.
	marks []*NewlineMarker

	// level is the net indentation level implied by all recorded deltas.
	level int

	pendingBlank bool
	frozen       bool
}

func newWriter() *Writer {
	root := &Sequence{}
	return &Writer{root: root, target: root}
}

// Line appends the given fragments as the content of one line, terminated by
// exactly one newline marker. Calling Line with no fragments emits a bare
// blank line. A pending blank-line request is satisfied first.
func (w *Writer) Line(fragments ...Fragment) {
	w.ensureWritable("line")
	w.flushBlank()
	for _, f := range fragments {
		if f == nil {
			continue
		}
		w.target.append(f)
	}
	w.appendMark()
}

// Linef is shorthand for Line(Textf(format, args...)).
func (w *Writer) Linef(format string, args ...any) {
	w.Line(Textf(format, args...))
}

// BlankLine requests one blank line before the next content. Requests
// collapse: any number of pending requests yields at most one blank line, and
// a request made while the tree is still empty is dropped so output never
// starts with a blank line.
func (w *Writer) BlankLine() {
	w.ensureWritable("blank line")
	if len(w.marks) == 0 {
		return
	}
	w.pendingBlank = true
}

// Indent shifts the following lines one level (four columns) right. The delta
// attaches to the most recently created newline marker; requesting a change
// before any line exists is a contract violation.
func (w *Writer) Indent() {
	w.shift("indent", 1)
}

// Outdent shifts the following lines one level left, symmetric to Indent.
func (w *Writer) Outdent() {
	w.shift("outdent", -1)
}

func (w *Writer) shift(op string, delta int) {
	w.ensureWritable(op)
	if len(w.marks) == 0 {
		contractViolation(op, "indentation change requested before any line was emitted")
	}
	w.marks[len(w.marks)-1].delta += delta
	w.level += delta
}

// Indented runs body one level deeper and restores the level afterwards.
func (w *Writer) Indented(body func()) {
	w.Indent()
	body()
	w.Outdent()
}

// Annotated swaps in a fresh write target, runs body against it, then wraps
// the accumulated region in an annotation-tagged node appended to the outer
// target. Body may emit lines, tables, and nested annotated regions. If body
// leaves the writer pointed at a different target than the one it was given,
// the nested emission logic is broken and the render aborts.
func (w *Writer) Annotated(tag Annotation, body func()) {
	w.ensureWritable("annotated")
	// A pending blank separates the region from prior content; it belongs to
	// the outer target, not the annotated subtree.
	w.flushBlank()
	outer := w.target
	region := &Sequence{}
	w.target = region
	body()
	if w.target != region {
		contractViolation("annotated", "write target mismatch after annotated region %q", tag.Kind)
	}
	w.target = outer
	w.target.append(&Annotated{Tag: tag, Body: region})
}

// Issue emits a region flagged as a content issue, such as an ambiguous or
// unsupported generation decision. The flag is metadata only; the region's
// text renders unchanged, and later consumers may surface or strip it.
func (w *Writer) Issue(detail string, body func()) {
	w.Annotated(Annotation{Kind: AnnotationIssue, Detail: detail}, body)
}

// Table appends a grid of fragment cells followed by one newline marker.
// Rows may have differing lengths; column alignment is deferred to later
// consumers of the frozen tree.
func (w *Writer) Table(rows [][]Fragment) {
	w.ensureWritable("table")
	w.flushBlank()
	copied := make([][]Fragment, len(rows))
	for i, row := range rows {
		copied[i] = append([]Fragment(nil), row...)
	}
	w.target.append(&Table{Rows: copied})
	w.appendMark()
}

// Multiline splits a block of already-indented text into individually
// indented lines. The block must use four-column nesting; tabs advance to the
// next tab stop of four. The first line is emitted verbatim; each later
// line's leading whitespace is converted to indent/outdent moves relative to
// the level active when the call was made. Blank lines keep the current
// level. The net indentation effect of the whole call is zero.
func (w *Writer) Multiline(block string) {
	w.ensureWritable("multiline")
	lines := strings.Split(block, "\n")
	w.Line(Text(lines[0]))

	base := w.level
	current := base
	moveTo := func(target int) {
		for current < target {
			w.Indent()
			current++
		}
		for current > target {
			w.Outdent()
			current--
		}
	}

	for _, line := range lines[1:] {
		columns, rest := splitIndent(line)
		if rest == "" {
			w.Line()
			continue
		}
		if columns%4 != 0 {
			contractViolation("multiline", "line %q is indented %d columns, not a multiple of four", rest, columns)
		}
		moveTo(base + columns/4)
		w.Line(Text(rest))
	}
	moveTo(base)
}

// Separated visits count elements in order, issuing blank-line requests
// according to mode. Requests collapse per the usual rule, so repeated
// separators before any content still yield at most one blank line.
func (w *Writer) Separated(mode SeparatorMode, count int, visit func(i int)) {
	for i := 0; i < count; i++ {
		if i == 0 && mode.leading() || i > 0 && mode.interposing() {
			w.BlankLine()
		}
		visit(i)
	}
}

// splitIndent scans leading whitespace, counting a space as one column and a
// tab as a jump to the next multiple of four. It stops at the first
// non-whitespace character and returns the column count plus the remaining
// text; pure-whitespace lines return an empty remainder.
func splitIndent(line string) (int, string) {
	columns := 0
	for i, r := range line {
		switch r {
		case ' ':
			columns++
		case '\t':
			columns = (columns/4 + 1) * 4
		default:
			return columns, line[i:]
		}
	}
	return columns, ""
}

func (w *Writer) appendMark() {
	mark := &NewlineMarker{}
	w.marks = append(w.marks, mark)
	w.target.append(mark)
}

func (w *Writer) flushBlank() {
	if !w.pendingBlank {
		return
	}
	w.pendingBlank = false
	w.appendMark()
}

func (w *Writer) ensureWritable(op string) {
	if w.frozen {
		contractViolation(op, "write after the render was finalized")
	}
}

func (w *Writer) freeze() {
	w.frozen = true
}

// SeparatorMode composes the two blank-line primitives into one declarative
// surface for Separated.
type SeparatorMode int

const (
	// SeparatorNone visits elements back to back.
	SeparatorNone SeparatorMode = iota
	// SeparatorInterposed requests a blank line before every element after
	// the first.
	SeparatorInterposed
	// SeparatorLeading requests a blank line before the first element only.
	SeparatorLeading
	// SeparatorLeadingAndInterposed requests a blank line before every
	// element.
	SeparatorLeadingAndInterposed
)

func (m SeparatorMode) leading() bool {
	return m == SeparatorLeading || m == SeparatorLeadingAndInterposed
}

func (m SeparatorMode) interposing() bool {
	return m == SeparatorInterposed || m == SeparatorLeadingAndInterposed
}
