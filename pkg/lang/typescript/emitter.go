package typescript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// unknownHelper is the fixed runtime guard embedded at the top of every
// generated file. It is stored pre-indented at four columns per level so the
// multiline emitter can rebuild its nesting.
const unknownHelper = `export function isRecord(value: unknown): value is Record<string, unknown> {
    return typeof value === "object" && value !== null;
}`

// emitter builds TypeScript declarations for one module. Declaration names
// share a single module-scope namespace; property names keep their wire form
// and are quoted when TypeScript requires it.
type emitter struct {
	module model.Module
	scope  *emit.Namespace
	decls  map[string]*emit.Name
}

var _ emit.Emitter = (*emitter)(nil)

func newEmitter(module model.Module) *emitter {
	e := &emitter{
		module: module,
		scope:  emit.NewNamespace("module scope"),
		decls:  make(map[string]*emit.Name),
	}
	for _, decl := range module.Decls {
		e.decls[decl.Name] = e.scope.Declare(pascal(decl.Name))
	}
	return e
}

func (e *emitter) Namespaces() []*emit.Namespace {
	return []*emit.Namespace{e.scope}
}

func (e *emitter) Emit(w *emit.Writer) {
	e.comment(w, e.module.Description)
	w.Multiline(unknownHelper)

	w.Separated(emit.SeparatorLeadingAndInterposed, len(e.module.Decls), func(i int) {
		decl := e.module.Decls[i]
		if len(decl.Enum) > 0 {
			e.emitUnion(w, decl)
			return
		}
		e.emitInterface(w, decl)
	})
}

func (e *emitter) emitUnion(w *emit.Writer, decl model.Decl) {
	e.comment(w, decl.Description)
	values := make([]string, len(decl.Enum))
	for i, value := range decl.Enum {
		values[i] = fmt.Sprintf("%q", value)
	}
	w.Line(
		emit.Text("export type "),
		emit.Placeholder(e.decls[decl.Name]),
		emit.Textf(" = %s;", strings.Join(values, " | ")),
	)
}

func (e *emitter) emitInterface(w *emit.Writer, decl model.Decl) {
	e.comment(w, decl.Description)
	w.Line(emit.Text("export interface "), emit.Placeholder(e.decls[decl.Name]), emit.Text(" {"))
	w.Indent()
	for _, field := range decl.Fields {
		e.emitProperty(w, field)
	}
	w.Outdent()
	w.Line(emit.Text("}"))
}

func (e *emitter) emitProperty(w *emit.Writer, field model.Field) {
	property := propertyKey(field.Name)
	if !field.Required {
		property += "?"
	}

	typeFragment, ok := e.typeRefFragment(field.Type)
	line := func() {
		w.Line(emit.Textf("%s: ", property), typeFragment, emit.Text(";"))
	}
	if !ok {
		w.Issue(fmt.Sprintf("property %q has no TypeScript representation for %s type", field.Name, field.Type.Kind), line)
		return
	}
	line()
}

func (e *emitter) typeRefFragment(ref model.TypeRef) (emit.Fragment, bool) {
	switch ref.Kind {
	case model.KindString:
		return emit.Text("string"), true
	case model.KindBoolean:
		return emit.Text("boolean"), true
	case model.KindInteger, model.KindNumber:
		return emit.Text("number"), true
	case model.KindObject:
		return emit.Text("Record<string, unknown>"), true
	case model.KindArray:
		if ref.Items == nil {
			return emit.Text("unknown[]"), true
		}
		items, ok := e.typeRefFragment(*ref.Items)
		if !ok {
			return items, false
		}
		return emit.Group(items, emit.Text("[]")), true
	case model.KindRef:
		if name, ok := e.decls[ref.Ref]; ok {
			return emit.Placeholder(name), true
		}
		return emit.Text("unknown"), false
	default:
		return emit.Text("unknown"), false
	}
}

func (e *emitter) comment(w *emit.Writer, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			w.Line(emit.Text("//"))
			continue
		}
		w.Line(emit.Text("// " + line))
	}
}

// propertyKey quotes property names TypeScript cannot express bare.
func propertyKey(name string) string {
	for i, r := range name {
		bare := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9')
		if !bare {
			return fmt.Sprintf("%q", name)
		}
	}
	if name == "" {
		return `""`
	}
	return name
}

func pascal(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	if b.Len() == 0 {
		return "T"
	}
	return b.String()
}
