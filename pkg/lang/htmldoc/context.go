package htmldoc

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// templateEmitter supplies the namespaces and context value for the template
// fallback path. Section anchors are symbolic names so they stay distinct
// even when declaration names collide after slugging.
type templateEmitter struct {
	module  model.Module
	theme   *theme.RendererConfig
	header  []string
	anchors *emit.Namespace
	byDecl  map[string]*emit.Name
}

var _ emit.TemplateEmitter = (*templateEmitter)(nil)

func newTemplateEmitter(module model.Module, themeCfg *theme.RendererConfig, header []string) *templateEmitter {
	e := &templateEmitter{
		module:  module,
		theme:   themeCfg,
		header:  header,
		anchors: emit.NewNamespace("section anchors"),
		byDecl:  make(map[string]*emit.Name),
	}
	for _, decl := range module.Decls {
		e.byDecl[decl.Name] = e.anchors.Declare("type-" + strings.ToLower(decl.Name))
	}
	return e
}

func (e *templateEmitter) Namespaces() []*emit.Namespace {
	return []*emit.Namespace{e.anchors}
}

func (e *templateEmitter) TemplateName() string {
	return templateName
}

// TemplateContext composes the resolved anchors with the module data. All
// descriptions pass through the sanitizer before reaching the template.
func (e *templateEmitter) TemplateContext(names *emit.NameAssignment) any {
	decls := make([]map[string]any, 0, len(e.module.Decls))
	for _, decl := range e.module.Decls {
		decls = append(decls, map[string]any{
			"name":        decl.Name,
			"anchor":      names.StringOf(e.byDecl[decl.Name]),
			"description": sanitizeDescription(decl.Description),
			"fields":      fieldContext(decl),
			"enum":        decl.Enum,
		})
	}

	ctx := map[string]any{
		"module": map[string]any{
			"name":        e.module.Name,
			"description": sanitizeDescription(e.module.Description),
		},
		"decls":  decls,
		"header": strings.Join(e.header, "\n"),
	}
	if e.theme != nil {
		ctx["theme"] = map[string]any{
			"name":    e.theme.Theme,
			"variant": e.theme.Variant,
			"css":     cssVariables(e.theme),
		}
	}
	return ctx
}

func fieldContext(decl model.Decl) []map[string]any {
	fields := make([]map[string]any, 0, len(decl.Fields))
	for _, field := range decl.Fields {
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"type":        typeLabel(field.Type),
			"required":    field.Required,
			"deprecated":  field.Deprecated,
			"description": sanitizeDescription(field.Description),
		})
	}
	return fields
}

func typeLabel(ref model.TypeRef) string {
	switch ref.Kind {
	case model.KindArray:
		if ref.Items == nil {
			return "array"
		}
		return "array of " + typeLabel(*ref.Items)
	case model.KindRef:
		return ref.Ref
	case model.KindUnknown:
		return "unknown"
	default:
		if ref.Format != "" {
			return fmt.Sprintf("%s (%s)", ref.Kind, ref.Format)
		}
		return string(ref.Kind)
	}
}

// cssVariables flattens theme CSS variables into one :root declaration block
// so the template does not need to iterate a map.
func cssVariables(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		fmt.Fprintf(&b, " %s: %s;", name, cfg.CSSVars[key])
	}
	b.WriteString(" }")
	return b.String()
}
