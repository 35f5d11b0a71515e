package emit

import "fmt"

// Namespace groups symbolic names that must receive pairwise-distinct textual
// identifiers. Emitters declare their namespaces once per render, before
// emission begins; membership never changes afterwards.
type Namespace struct {
	label string
	names []*Name
}

// NewNamespace creates an empty namespace with a diagnostic label.
func NewNamespace(label string) *Namespace {
	return &Namespace{label: label}
}

// Label returns the diagnostic label given at construction.
func (ns *Namespace) Label() string {
	return ns.label
}

// Declare registers a new symbolic name in the namespace. The hint is the
// preferred identifier; the allocator may alter it to keep names distinct.
func (ns *Namespace) Declare(hint string) *Name {
	name := &Name{ns: ns, hint: hint}
	ns.names = append(ns.names, name)
	return name
}

// Names returns the declared names in declaration order.
func (ns *Namespace) Names() []*Name {
	out := make([]*Name, len(ns.names))
	copy(out, ns.names)
	return out
}

// Name is a symbolic identifier placeholder. It belongs to exactly one
// namespace and has no textual value until name assignment runs.
type Name struct {
	ns   *Namespace
	hint string
}

// Hint returns the preferred identifier supplied at declaration.
func (n *Name) Hint() string {
	return n.hint
}

// Namespace returns the owning namespace.
func (n *Name) Namespace() *Namespace {
	return n.ns
}

// NameAssignment is the immutable result of name resolution, mapping every
// declared name to its final string. It is produced at most once per render.
type NameAssignment struct {
	strings map[*Name]string
}

// NewNameAssignment builds an assignment from a name-to-string map. The map
// is copied so allocators cannot mutate the assignment after handing it over.
func NewNameAssignment(strings map[*Name]string) *NameAssignment {
	copied := make(map[*Name]string, len(strings))
	for name, s := range strings {
		copied[name] = s
	}
	return &NameAssignment{strings: copied}
}

// StringOf returns the resolved identifier for name. Requesting a name that
// was never assigned is a contract violation.
func (a *NameAssignment) StringOf(name *Name) string {
	if a == nil {
		contractViolation("names", "name %q read before assignment", nameHint(name))
	}
	if name == nil {
		contractViolation("names", "nil name")
	}
	s, ok := a.strings[name]
	if !ok {
		contractViolation("names", "name %q was not declared before assignment", name.hint)
	}
	return s
}

// Len returns the number of assigned names.
func (a *NameAssignment) Len() int {
	if a == nil {
		return 0
	}
	return len(a.strings)
}

func nameHint(n *Name) string {
	if n == nil {
		return "<nil>"
	}
	return n.hint
}

// Allocator is the external name-assignment collaborator. It receives every
// namespace declared for the render, merged in declaration order, and must
// return a completed assignment covering each declared name with strings that
// are distinct within their namespace.
type Allocator interface {
	Assign(namespaces []*Namespace) (*NameAssignment, error)
}

// validateAssignment guards the allocator contract: total coverage and
// per-namespace distinctness.
func validateAssignment(assignment *NameAssignment, namespaces []*Namespace) error {
	if assignment == nil {
		return fmt.Errorf("emit: allocator returned nil assignment")
	}
	for _, ns := range namespaces {
		seen := make(map[string]string, len(ns.names))
		for _, name := range ns.names {
			s, ok := assignment.strings[name]
			if !ok {
				return fmt.Errorf("emit: allocator left name %q in namespace %q unassigned", name.hint, ns.label)
			}
			if prior, dup := seen[s]; dup {
				return fmt.Errorf("emit: allocator assigned %q to both %q and %q in namespace %q", s, prior, name.hint, ns.label)
			}
			seen[s] = name.hint
		}
	}
	return nil
}
