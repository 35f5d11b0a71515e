package golang

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// emitter builds Go declarations for one module. Package-level identifiers
// (type names and enum constants) share one namespace; each struct gets its
// own namespace for field names, mirroring Go's scoping.
type emitter struct {
	module  model.Module
	pkgName string

	pkgScope *emit.Namespace
	decls    map[string]*emit.Name
	members  map[string]map[string]*emit.Name

	fieldScopes []*emit.Namespace
	fields      map[string]map[string]*emit.Name
}

var _ emit.Emitter = (*emitter)(nil)

func newEmitter(module model.Module, pkgName string) *emitter {
	if pkgName == "" {
		pkgName = strings.ToLower(module.Name)
	}
	if pkgName == "" {
		pkgName = "types"
	}

	e := &emitter{
		module:   module,
		pkgName:  pkgName,
		pkgScope: emit.NewNamespace("package scope"),
		decls:    make(map[string]*emit.Name),
		members:  make(map[string]map[string]*emit.Name),
		fields:   make(map[string]map[string]*emit.Name),
	}

	for _, decl := range module.Decls {
		e.decls[decl.Name] = e.pkgScope.Declare(exported(decl.Name))

		if len(decl.Enum) > 0 {
			members := make(map[string]*emit.Name, len(decl.Enum))
			for _, value := range decl.Enum {
				members[value] = e.pkgScope.Declare(exported(decl.Name) + exported(value))
			}
			e.members[decl.Name] = members
		}

		if len(decl.Fields) > 0 {
			scope := emit.NewNamespace("fields of " + decl.Name)
			names := make(map[string]*emit.Name, len(decl.Fields))
			for _, field := range decl.Fields {
				names[field.Name] = scope.Declare(exported(field.Name))
			}
			e.fieldScopes = append(e.fieldScopes, scope)
			e.fields[decl.Name] = names
		}
	}
	return e
}

func (e *emitter) Namespaces() []*emit.Namespace {
	namespaces := []*emit.Namespace{e.pkgScope}
	return append(namespaces, e.fieldScopes...)
}

func (e *emitter) Emit(w *emit.Writer) {
	e.comment(w, e.module.Description)
	w.Linef("package %s", e.pkgName)

	w.Separated(emit.SeparatorLeadingAndInterposed, len(e.module.Decls), func(i int) {
		decl := e.module.Decls[i]
		switch {
		case len(decl.Enum) > 0:
			e.emitEnum(w, decl)
		default:
			e.emitStruct(w, decl)
		}
	})
}

func (e *emitter) emitStruct(w *emit.Writer, decl model.Decl) {
	rows, issues := e.fieldRows(decl)

	body := func() {
		e.comment(w, decl.Description)
		w.Line(emit.Text("type "), emit.Placeholder(e.decls[decl.Name]), emit.Text(" struct {"))
		if len(rows) > 0 {
			w.Indent()
			w.Table(rows)
			w.Outdent()
		}
		w.Line(emit.Text("}"))
	}

	if len(issues) > 0 {
		w.Issue(decl.Name+": "+strings.Join(issues, "; "), body)
		return
	}
	body()
}

// fieldRows records each struct field as a grid row (name, type, tag) so a
// later consumer can align the columns the way gofmt would. Fields the type
// model cannot express in Go fall back to `any` and are reported as issues.
func (e *emitter) fieldRows(decl model.Decl) ([][]emit.Fragment, []string) {
	rows := make([][]emit.Fragment, 0, len(decl.Fields))
	var issues []string
	for _, field := range decl.Fields {
		typeFragment, ok := e.typeFragment(field)
		if !ok {
			issues = append(issues, fmt.Sprintf("field %q has no Go representation for %s type", field.Name, field.Type.Kind))
		}
		rows = append(rows, []emit.Fragment{
			emit.Placeholder(e.fields[decl.Name][field.Name]),
			typeFragment,
			emit.Text(e.tag(field)),
		})
	}
	return rows, issues
}

func (e *emitter) emitEnum(w *emit.Writer, decl model.Decl) {
	declName := e.decls[decl.Name]
	e.comment(w, decl.Description)
	w.Line(emit.Text("type "), emit.Placeholder(declName), emit.Text(" string"))
	w.BlankLine()
	w.Line(emit.Text("const ("))
	w.Indent()

	rows := make([][]emit.Fragment, 0, len(decl.Enum))
	for _, value := range decl.Enum {
		rows = append(rows, []emit.Fragment{
			emit.Placeholder(e.members[decl.Name][value]),
			emit.Placeholder(declName),
			emit.Textf("= %q", value),
		})
	}
	w.Table(rows)

	w.Outdent()
	w.Line(emit.Text(")"))
}

// typeFragment maps a field type to Go syntax. References resolve through
// the package-scope namespace; anything the module cannot express becomes an
// issue-flagged `any` so generation still completes.
func (e *emitter) typeFragment(field model.Field) (emit.Fragment, bool) {
	fragment, ok := e.typeRefFragment(field.Type)
	if !ok {
		return fragment, false
	}
	if !field.Required && field.Type.Kind != model.KindArray && field.Type.Kind != model.KindObject {
		return emit.Group(emit.Text("*"), fragment), true
	}
	return fragment, true
}

func (e *emitter) typeRefFragment(ref model.TypeRef) (emit.Fragment, bool) {
	switch ref.Kind {
	case model.KindString:
		return emit.Text("string"), true
	case model.KindBoolean:
		return emit.Text("bool"), true
	case model.KindInteger:
		if ref.Format == "int32" {
			return emit.Text("int32"), true
		}
		return emit.Text("int64"), true
	case model.KindNumber:
		return emit.Text("float64"), true
	case model.KindObject:
		return emit.Text("map[string]any"), true
	case model.KindArray:
		if ref.Items == nil {
			return emit.Text("[]any"), true
		}
		items, ok := e.typeRefFragment(*ref.Items)
		if !ok {
			return items, false
		}
		return emit.Group(emit.Text("[]"), items), true
	case model.KindRef:
		if name, ok := e.decls[ref.Ref]; ok {
			return emit.Placeholder(name), true
		}
		return emit.Text("any"), false
	default:
		return emit.Text("any"), false
	}
}

func (e *emitter) tag(field model.Field) string {
	wire := field.Name
	if !field.Required {
		wire += ",omitempty"
	}
	return fmt.Sprintf("`json:%q`", wire)
}

func (e *emitter) comment(w *emit.Writer, text string) {
	for _, line := range commentLines(text) {
		w.Line(emit.Text(line))
	}
}

func commentLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			lines = append(lines, "//")
			continue
		}
		lines = append(lines, "// "+line)
	}
	return lines
}

func exported(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}
