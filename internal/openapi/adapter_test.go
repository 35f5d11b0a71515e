package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-srcgen/pkg/model"
)

const libraryDoc = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Library",
    "description": "A small catalog API.",
    "version": "1.2.0"
  },
  "paths": {},
  "components": {
    "schemas": {
      "Book": {
        "type": "object",
        "description": "A catalogued book.",
        "required": ["id", "title"],
        "properties": {
          "id": {"type": "string", "format": "uuid"},
          "title": {"type": "string"},
          "pages": {"type": "integer", "format": "int32"},
          "status": {"$ref": "#/components/schemas/BookStatus"},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      },
      "BookStatus": {
        "type": "string",
        "enum": ["available", "loaned", "lost"]
      }
    }
  }
}`

func TestParseModule(t *testing.T) {
	module, err := New().ParseModule(context.Background(), []byte(libraryDoc))
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}

	if module.Name != "Library" {
		t.Fatalf("module name = %q, want %q", module.Name, "Library")
	}
	if module.Description != "A small catalog API." {
		t.Fatalf("module description = %q", module.Description)
	}
	if module.Metadata["version"] != "1.2.0" {
		t.Fatalf("module version = %q, want %q", module.Metadata["version"], "1.2.0")
	}

	want := []model.Decl{
		{
			Name:        "Book",
			Description: "A catalogued book.",
			Fields: []model.Field{
				{Name: "id", Type: model.TypeRef{Kind: model.KindString, Format: "uuid"}, Required: true},
				{Name: "pages", Type: model.TypeRef{Kind: model.KindInteger, Format: "int32"}},
				{Name: "status", Type: model.TypeRef{Kind: model.KindRef, Ref: "BookStatus"}},
				{Name: "tags", Type: model.TypeRef{
					Kind:  model.KindArray,
					Items: &model.TypeRef{Kind: model.KindString},
				}},
				{Name: "title", Type: model.TypeRef{Kind: model.KindString}, Required: true},
			},
		},
		{
			Name: "BookStatus",
			Enum: []string{"available", "loaned", "lost"},
		},
	}
	if diff := cmp.Diff(want, module.Decls); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseModuleRefFieldKeepsNoReferencedMetadata(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "Refs", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Order": {
        "type": "object",
        "properties": {
          "status": {"$ref": "#/components/schemas/Status"}
        }
      },
      "Status": {
        "type": "string",
        "description": "Lifecycle state.",
        "enum": ["open", "closed"],
        "default": "open"
      }
    }
  }
}`
	module, err := New().ParseModule(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}

	order, ok := module.Decl("Order")
	if !ok {
		t.Fatalf("Order declaration missing")
	}
	field := order.Fields[0]
	if field.Type.Kind != model.KindRef || field.Type.Ref != "Status" {
		t.Fatalf("field type = %+v, want ref to Status", field.Type)
	}
	if field.Description != "" || field.Default != nil || len(field.Enum) != 0 {
		t.Fatalf("ref field inherited referenced-schema metadata: %+v", field)
	}

	status, ok := module.Decl("Status")
	if !ok {
		t.Fatalf("Status declaration missing")
	}
	if len(status.Enum) != 2 || status.Description != "Lifecycle state." {
		t.Fatalf("referenced declaration lost its own metadata: %+v", status)
	}
}

func TestParseModuleUntypedProperty(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "Odd", "version": "0.1.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Thing": {
        "type": "object",
        "properties": {
          "payload": {}
        }
      }
    }
  }
}`
	module, err := New().ParseModule(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}

	field := module.Decls[0].Fields[0]
	if field.Type.Kind != model.KindUnknown {
		t.Fatalf("untyped property kind = %q, want unknown", field.Type.Kind)
	}
}

func TestParseModuleNoSchemas(t *testing.T) {
	doc := `{"openapi": "3.0.3", "info": {"title": "Empty", "version": "0.1.0"}, "paths": {}}`
	if _, err := New().ParseModule(context.Background(), []byte(doc)); err == nil {
		t.Fatalf("expected error for document without component schemas")
	}
}

func TestParseModuleEmptyPayload(t *testing.T) {
	if _, err := New().ParseModule(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestParseModuleSkipsValidationWhenDisabled(t *testing.T) {
	// Missing info.version fails validation but still loads.
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "Loose"},
  "paths": {},
  "components": {
    "schemas": {
      "Flag": {"type": "boolean"}
    }
  }
}`
	if _, err := New().ParseModule(context.Background(), []byte(doc)); err == nil {
		t.Fatalf("expected validation error")
	}

	module, err := New(WithValidation(false)).ParseModule(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("parse module without validation: %v", err)
	}
	if len(module.Decls) != 1 || module.Decls[0].Name != "Flag" {
		t.Fatalf("unexpected declarations: %+v", module.Decls)
	}
}

func TestParseModuleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().ParseModule(ctx, []byte(libraryDoc)); err == nil {
		t.Fatalf("expected context error")
	}
}
