package model

// Kind is the simplified enum of type kinds the generators understand.
type Kind string

const (
	// KindUnknown marks a type the source document did not pin down; emitters
	// surface it as an issue region rather than failing.
	KindUnknown Kind = ""

	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindRef     Kind = "ref"
)

// TypeRef describes the type of a field. Ref carries the referenced
// declaration name when Kind is KindRef; Items describes the element type
// when Kind is KindArray.
type TypeRef struct {
	Kind   Kind     `json:"kind"`
	Format string   `json:"format,omitempty"`
	Ref    string   `json:"ref,omitempty"`
	Items  *TypeRef `json:"items,omitempty"`
}

// Field models a single member of a declaration.
type Field struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        TypeRef  `json:"type"`
	Required    bool     `json:"required"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Decl is one named type declaration to generate. A declaration with Enum
// values and no fields renders as an enumeration in targets that support one.
type Decl struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []Field  `json:"fields,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Module is the top-level type representation handed to emitters. Emitters
// query it and never mutate it.
type Module struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Decls       []Decl            `json:"decls"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Decl looks up a declaration by name.
func (m Module) Decl(name string) (Decl, bool) {
	for _, decl := range m.Decls {
		if decl.Name == name {
			return decl, true
		}
	}
	return Decl{}, false
}
