package golang

import (
	"context"
	"fmt"

	"github.com/goliatone/go-srcgen/internal/namealloc"
	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/lang"
	"github.com/goliatone/go-srcgen/pkg/model"
)

// keywords are reserved in Go and never handed out as identifiers.
var keywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
}

// Target generates Go type declarations on the structured emission path.
type Target struct{}

var _ lang.Target = (*Target)(nil)

// New constructs the Go target.
func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "go"
}

func (t *Target) FileExtension() string {
	return ".go"
}

// Generate renders the module's declarations as a single Go source file.
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

	output, err := renderer.Render(newEmitter(module, options.PackageName))
	if err != nil {
		return emit.Output{}, fmt.Errorf("golang: render module %q: %w", module.Name, err)
	}
	return output, nil
}
