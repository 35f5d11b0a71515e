package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-srcgen/pkg/model"
)

// Adapter converts OpenAPI component schemas into the type module consumed
// by language targets.
type Adapter struct {
	validate bool
}

// Option configures the adapter.
type Option func(*Adapter)

// WithValidation toggles document validation before conversion. Enabled by
// default.
func WithValidation(enabled bool) Option {
	return func(a *Adapter) {
		a.validate = enabled
	}
}

// New constructs an Adapter applying any provided options.
func New(options ...Option) *Adapter {
	a := &Adapter{validate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// LoadModule reads an OpenAPI document from disk and converts it.
func (a *Adapter) LoadModule(ctx context.Context, path string) (model.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Module{}, fmt.Errorf("openapi: read document: %w", err)
	}
	return a.ParseModule(ctx, data)
}

// ParseModule converts a raw OpenAPI payload into a type module. Component
// schemas become declarations; everything else in the document is ignored.
func (a *Adapter) ParseModule(ctx context.Context, data []byte) (model.Module, error) {
	if err := ctx.Err(); err != nil {
		return model.Module{}, err
	}
	if len(data) == 0 {
		return model.Module{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Module{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return model.Module{}, fmt.Errorf("openapi: validate document: %w", err)
		}
	}

	module := model.Module{Name: "types"}
	if doc.Info != nil {
		if title := strings.TrimSpace(doc.Info.Title); title != "" {
			module.Name = title
		}
		module.Description = doc.Info.Description
		if doc.Info.Version != "" {
			module.Metadata = map[string]string{"version": doc.Info.Version}
		}
	}

	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return module, errors.New("openapi: document has no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		module.Decls = append(module.Decls, convertDecl(name, doc.Components.Schemas[name]))
	}
	return module, nil
}

func convertDecl(name string, ref *openapi3.SchemaRef) model.Decl {
	decl := model.Decl{Name: name}
	if ref == nil || ref.Value == nil {
		return decl
	}
	src := ref.Value
	decl.Description = src.Description

	if values := enumStrings(src.Enum); len(values) > 0 {
		decl.Enum = values
		return decl
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, field := range src.Required {
		required[field] = struct{}{}
	}

	propertyNames := make([]string, 0, len(src.Properties))
	for propertyName := range src.Properties {
		propertyNames = append(propertyNames, propertyName)
	}
	sort.Strings(propertyNames)

	for _, propertyName := range propertyNames {
		property := src.Properties[propertyName]
		field := model.Field{
			Name: propertyName,
			Type: convertTypeRef(property),
		}
		if _, ok := required[propertyName]; ok {
			field.Required = true
		}
		// kin-openapi resolves $ref properties to the referenced schema, so
		// field-level attributes are only taken from inline schemas; the
		// referenced declaration keeps its own.
		if property != nil && property.Ref == "" && property.Value != nil {
			field.Description = property.Value.Description
			field.Default = property.Value.Default
			field.Deprecated = property.Value.Deprecated
			field.Enum = enumStrings(property.Value.Enum)
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl
}

func convertTypeRef(ref *openapi3.SchemaRef) model.TypeRef {
	if ref == nil {
		return model.TypeRef{}
	}
	if target := refName(ref.Ref); target != "" {
		return model.TypeRef{Kind: model.KindRef, Ref: target}
	}
	if ref.Value == nil {
		return model.TypeRef{}
	}

	src := ref.Value
	switch firstSchemaType(src.Type) {
	case "string":
		return model.TypeRef{Kind: model.KindString, Format: src.Format}
	case "integer":
		return model.TypeRef{Kind: model.KindInteger, Format: src.Format}
	case "number":
		return model.TypeRef{Kind: model.KindNumber, Format: src.Format}
	case "boolean":
		return model.TypeRef{Kind: model.KindBoolean}
	case "array":
		out := model.TypeRef{Kind: model.KindArray}
		if src.Items != nil {
			items := convertTypeRef(src.Items)
			out.Items = &items
		}
		return out
	case "object":
		return model.TypeRef{Kind: model.KindObject}
	default:
		// Unions and untyped schemas have no direct representation; the
		// emitters surface them as issue regions.
		return model.TypeRef{}
	}
}

func refName(ref string) string {
	const prefix = "#/components/schemas/"
	if strings.HasPrefix(ref, prefix) {
		return strings.TrimPrefix(ref, prefix)
	}
	return ""
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
