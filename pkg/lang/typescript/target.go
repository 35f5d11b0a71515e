package typescript

import (
	"context"
	"fmt"

	"github.com/goliatone/go-srcgen/internal/namealloc"
	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/lang"
	"github.com/goliatone/go-srcgen/pkg/model"
)

var keywords = []string{
	"abstract", "any", "as", "boolean", "break", "case", "catch", "class",
	"const", "continue", "declare", "default", "delete", "do", "else", "enum",
	"export", "extends", "false", "finally", "for", "function", "if",
	"implements", "import", "in", "instanceof", "interface", "let", "new",
	"null", "number", "object", "package", "private", "protected", "public",
	"return", "static", "string", "super", "switch", "this", "throw", "true",
	"try", "type", "typeof", "undefined", "var", "void", "while", "with",
	"yield",
}

// Target generates TypeScript type declarations on the structured emission
// path.
type Target struct{}

var _ lang.Target = (*Target)(nil)

// New constructs the TypeScript target.
func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "typescript"
}

func (t *Target) FileExtension() string {
	return ".ts"
}

// Generate renders the module's declarations as a single .ts source file.
func (t *Target) Generate(ctx context.Context, module model.Module, options lang.Options) (emit.Output, error) {
	if err := ctx.Err(); err != nil {
		return emit.Output{}, err
	}

	alloc := options.Allocator
	if alloc == nil {
		alloc = namealloc.New(namealloc.WithReservedWords(keywords...))
	}

	renderer := emit.New(
		emit.WithAllocator(alloc),
		emit.WithLeadingComments(options.Header...),
	)

	output, err := renderer.Render(newEmitter(module))
	if err != nil {
		return emit.Output{}, fmt.Errorf("typescript: render module %q: %w", module.Name, err)
	}
	return output, nil
}
