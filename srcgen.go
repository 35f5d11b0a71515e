package srcgen

import (
	"context"

	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/model"
	"github.com/goliatone/go-srcgen/pkg/orchestrator"
)

// Module aliases the type representation rendered by language targets.
type Module = model.Module

// Output aliases the immutable render result: finalized text, name
// assignment, and the frozen fragment tree.
type Output = emit.Output

// Request aliases the orchestrator request for callers using the root
// package.
type Request = orchestrator.Request

// Result aliases the orchestrator result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the source document, builds the type module, and renders it
// with the named target. It is the simplest entry point for callers that
// just want generated text.
func Generate(ctx context.Context, sourcePath, target string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		SourcePath: sourcePath,
		Target:     target,
	})
}

// GenerateFromModule renders a pre-built type module, bypassing the loader
// stage while still delegating to the orchestrator.
func GenerateFromModule(ctx context.Context, module Module, target string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Module: &module,
		Target: target,
	})
}
