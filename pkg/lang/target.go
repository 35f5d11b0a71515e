package lang

import (
	"context"

	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// Target converts a type module into finished source text for one output
// language. Implementations build a language-specific emitter and drive it
// through an emit.Renderer, either on the structured path or through the
// template fallback.
type Target interface {
	Name() string
	FileExtension() string
	Generate(ctx context.Context, module model.Module, options Options) (emit.Output, error)
}

// Options carries per-request generation inputs shared by all targets.
type Options struct {
	// PackageName overrides the package/module name derived from the type
	// module, for targets that declare one.
	PackageName string
	// Header lines are prepended to output as already-formatted comments,
	// typically a "generated, do not edit" banner.
	Header []string
	// Allocator overrides the name-assignment collaborator. When nil each
	// target wires the default allocator with its own reserved words.
	Allocator emit.Allocator
}
