package htmldoc

import (
	"context"
	"io"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-srcgen/pkg/lang"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// captureRenderer records the template invocation instead of executing
// pongo2, so context assembly can be asserted directly.
type captureRenderer struct {
	name    string
	context any
}

func (r *captureRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *captureRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.name = name
	r.context = data
	return "<html></html>", nil
}

func (r *captureRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *captureRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *captureRenderer) GlobalContext(any) error { return nil }

func docModule() model.Module {
	return model.Module{
		Name:        "Library",
		Description: "Catalog <script>alert(1)</script> types.",
		Decls: []model.Decl{
			{
				Name:        "Book",
				Description: "A <strong>catalogued</strong> book.",
				Fields: []model.Field{
					{Name: "id", Type: model.TypeRef{Kind: model.KindString, Format: "uuid"}, Required: true},
					{Name: "tags", Type: model.TypeRef{
						Kind:  model.KindArray,
						Items: &model.TypeRef{Kind: model.KindString},
					}},
				},
			},
			// Lowercases to the same anchor hint as Book; resolution must
			// keep the anchors distinct.
			{Name: "book", Enum: []string{"a", "b"}},
		},
	}
}

func TestGenerateBuildsTemplateContext(t *testing.T) {
	capture := &captureRenderer{}
	target, err := New(WithTemplateRenderer(capture))
	if err != nil {
		t.Fatalf("new target: %v", err)
	}

	output, err := target.Generate(context.Background(), docModule(), lang.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if output.Source != "<html></html>" {
		t.Fatalf("source = %q", output.Source)
	}
	if capture.name != "templates/module.tpl" {
		t.Fatalf("template name = %q", capture.name)
	}

	ctx, ok := capture.context.(map[string]any)
	if !ok {
		t.Fatalf("context type = %T, want map", capture.context)
	}

	moduleCtx := ctx["module"].(map[string]any)
	if moduleCtx["description"] != "Catalog  types." {
		t.Fatalf("module description not sanitized: %q", moduleCtx["description"])
	}

	decls := ctx["decls"].([]map[string]any)
	if len(decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(decls))
	}
	if decls[0]["description"] != "A <strong>catalogued</strong> book." {
		t.Fatalf("inline formatting should survive sanitizing: %q", decls[0]["description"])
	}
	if decls[0]["anchor"] == decls[1]["anchor"] {
		t.Fatalf("colliding anchor hints resolved to the same string %q", decls[0]["anchor"])
	}

	fields := decls[0]["fields"].([]map[string]any)
	if fields[0]["type"] != "string (uuid)" {
		t.Fatalf("field type label = %q", fields[0]["type"])
	}
	if fields[1]["type"] != "array of string" {
		t.Fatalf("field type label = %q", fields[1]["type"])
	}

	if _, present := ctx["theme"]; present {
		t.Fatalf("theme context should be absent without a theme")
	}
}

func TestGenerateWithTheme(t *testing.T) {
	capture := &captureRenderer{}
	target, err := New(
		WithTemplateRenderer(capture),
		WithTheme(&theme.RendererConfig{
			Theme:   "dusk",
			Variant: "contrast",
			CSSVars: map[string]string{
				"accent": "#f00",
				"--bg":   "#000",
			},
		}),
	)
	if err != nil {
		t.Fatalf("new target: %v", err)
	}

	if _, err := target.Generate(context.Background(), docModule(), lang.Options{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	themeCtx := capture.context.(map[string]any)["theme"].(map[string]any)
	if themeCtx["name"] != "dusk" || themeCtx["variant"] != "contrast" {
		t.Fatalf("theme context = %v", themeCtx)
	}
	if themeCtx["css"] != ":root { --bg: #000; --accent: #f00; }" {
		t.Fatalf("css variables = %q", themeCtx["css"])
	}
}

func TestSanitizeDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"plain text", "plain text"},
		{"uses <code>id</code>", "uses <code>id</code>"},
		{`<a href="https://example.com">link</a>`, "link"},
		{"<script>alert(1)</script>done", "done"},
	}
	for _, tc := range cases {
		if got := sanitizeDescription(tc.in); got != tc.want {
			t.Fatalf("sanitizeDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	cases := []struct {
		ref  model.TypeRef
		want string
	}{
		{model.TypeRef{Kind: model.KindString}, "string"},
		{model.TypeRef{Kind: model.KindInteger, Format: "int64"}, "integer (int64)"},
		{model.TypeRef{Kind: model.KindRef, Ref: "Book"}, "Book"},
		{model.TypeRef{Kind: model.KindArray}, "array"},
		{model.TypeRef{}, "unknown"},
	}
	for _, tc := range cases {
		if got := typeLabel(tc.ref); got != tc.want {
			t.Fatalf("typeLabel(%+v) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}
