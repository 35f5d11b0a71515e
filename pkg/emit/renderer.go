package emit

import (
	"errors"
	"fmt"

	rendertemplate "github.com/goliatone/go-srcgen/pkg/render/template"
)

// Emitter is the capability contract implemented by each concrete,
// language-specific emitter. Namespaces reports every namespace needing
// resolved identifiers; Emit performs all emission calls against the writer.
// Emit has no error return: data-dependent generation concerns are expressed
// as Issue regions in otherwise-valid output, while genuine contract
// violations abort the render via panic.
type Emitter interface {
	Namespaces() []*Namespace
	Emit(w *Writer)
}

// TemplateEmitter is the alternate contract for targets that skip the
// structured tree and hand a context value to a general-purpose templating
// engine. Names resolve exactly as in the structured path.
type TemplateEmitter interface {
	Namespaces() []*Namespace
	TemplateName() string
	TemplateContext(names *NameAssignment) any
}

// Output is the immutable result of one render: the finalized text, the name
// assignment it was produced with, and the frozen fragment tree. Root lets
// later consumers align recorded table grids or inspect issue annotations;
// it is nil for template-rendered output.
type Output struct {
	Source string
	Names  *NameAssignment
	Root   Fragment
}

// Issues collects the details of every issue-annotated region in document
// order.
func (o Output) Issues() []string {
	var issues []string
	Walk(o.Root, func(f Fragment) {
		if a, ok := f.(*Annotated); ok && a.Tag.Kind == AnnotationIssue {
			issues = append(issues, a.Tag.Detail)
		}
	})
	return issues
}

// Option customises a Renderer before its single render.
type Option func(*Renderer)

// WithAllocator injects the external name-assignment collaborator.
func WithAllocator(alloc Allocator) Option {
	return func(r *Renderer) {
		r.alloc = alloc
	}
}

// WithLeadingComments prepends already-formatted comment lines to the output.
func WithLeadingComments(lines ...string) Option {
	return func(r *Renderer) {
		r.comments = append(r.comments, lines...)
	}
}

// Renderer drives one render from setup through finalize. It owns the writer,
// the write-target stack, and the name assignment, so independent renderers
// can run in parallel without shared state. A Renderer performs exactly one
// render; construct a new one per output.
type Renderer struct {
	alloc    Allocator
	comments []string

	names *NameAssignment
	done  bool
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render resolves the emitter's namespaces, runs its emission calls against a
// fresh writer, and flattens the frozen tree into final text paired with the
// name assignment.
func (r *Renderer) Render(emitter Emitter) (Output, error) {
	if emitter == nil {
		return Output{}, errors.New("emit: emitter is required")
	}
	if r.done {
		return Output{}, errors.New("emit: renderer already produced its output")
	}

	names, err := r.resolveNames(emitter.Namespaces())
	if err != nil {
		return Output{}, err
	}

	w := newWriter()
	for _, comment := range r.comments {
		w.Line(Text(comment))
	}
	emitter.Emit(w)
	w.freeze()

	r.names = names
	r.done = true
	return Output{
		Source: flatten(w.root, names),
		Names:  names,
		Root:   w.root,
	}, nil
}

// RenderTemplate resolves names as Render does, builds the emitter's context
// value, and feeds it to the templating engine, bypassing the fragment tree
// entirely. If names were already resolved for this renderer the computed
// assignment is reused rather than recomputed.
func (r *Renderer) RenderTemplate(emitter TemplateEmitter, engine rendertemplate.TemplateRenderer) (Output, error) {
	if emitter == nil {
		return Output{}, errors.New("emit: template emitter is required")
	}
	if engine == nil {
		return Output{}, errors.New("emit: template engine is required")
	}
	if r.done {
		return Output{}, errors.New("emit: renderer already produced its output")
	}

	names, err := r.resolveNames(emitter.Namespaces())
	if err != nil {
		return Output{}, err
	}

	source, err := engine.RenderTemplate(emitter.TemplateName(), emitter.TemplateContext(names))
	if err != nil {
		return Output{}, fmt.Errorf("emit: render template %q: %w", emitter.TemplateName(), err)
	}

	r.names = names
	r.done = true
	return Output{Source: source, Names: names}, nil
}

// Names returns the assignment produced by the render. Calling it before the
// render completes is a contract violation: it signals emission code that
// evaluates identifiers too eagerly.
func (r *Renderer) Names() *NameAssignment {
	if !r.done {
		contractViolation("names", "names accessor called before render completed")
	}
	return r.names
}

// resolveNames merges the declared namespaces in order and hands them to the
// allocator exactly once. The assignment, once produced, is never recomputed.
func (r *Renderer) resolveNames(namespaces []*Namespace) (*NameAssignment, error) {
	if r.names != nil {
		return r.names, nil
	}

	merged := make([]*Namespace, 0, len(namespaces))
	seen := make(map[*Namespace]struct{}, len(namespaces))
	total := 0
	for _, ns := range namespaces {
		if ns == nil {
			continue
		}
		if _, dup := seen[ns]; dup {
			continue
		}
		seen[ns] = struct{}{}
		merged = append(merged, ns)
		total += len(ns.names)
	}

	if total == 0 {
		r.names = NewNameAssignment(nil)
		return r.names, nil
	}
	if r.alloc == nil {
		return nil, errors.New("emit: name allocator is required when namespaces declare names")
	}

	assignment, err := r.alloc.Assign(merged)
	if err != nil {
		return nil, fmt.Errorf("emit: assign names: %w", err)
	}
	if err := validateAssignment(assignment, merged); err != nil {
		return nil, err
	}
	r.names = assignment
	return r.names, nil
}
