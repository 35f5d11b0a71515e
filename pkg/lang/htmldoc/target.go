package htmldoc

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-srcgen/internal/namealloc"
	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/lang"
	"github.com/goliatone/go-srcgen/pkg/model"
	rendertemplate "github.com/goliatone/go-srcgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-srcgen/pkg/render/template/gotemplate"
)

const templateName = "templates/module.tpl"

// Option configures the htmldoc target.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme passes a resolved go-theme renderer configuration so the page
// picks up theme tokens and CSS variables.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Target renders the type module as an HTML documentation page through the
// template fallback path: names resolve exactly as on the structured path,
// then an emitter-defined context feeds the pongo2 engine directly.
type Target struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

var _ lang.Target = (*Target)(nil)

// New constructs the htmldoc target applying any provided options.
func New(options ...Option) (*Target, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("htmldoc: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Target{templates: renderer, theme: cfg.theme}, nil
}

func (t *Target) Name() string {
	return "htmldoc"
}

func (t *Target) FileExtension() string {
	return ".html"
}

// Generate resolves anchor names, builds the template context, and renders
// the documentation page. The fragment tree, indentation engine, and
// blank-line coordination are bypassed entirely.
func (t *Target) Generate(ctx context.Context, module model.Module, options lang.Options) (emit.Output, error) {
	if err := ctx.Err(); err != nil {
		return emit.Output{}, err
	}

	alloc := options.Allocator
	if alloc == nil {
		alloc = namealloc.New()
	}

	renderer := emit.New(emit.WithAllocator(alloc))
	output, err := renderer.RenderTemplate(newTemplateEmitter(module, t.theme, options.Header), t.templates)
	if err != nil {
		return emit.Output{}, fmt.Errorf("htmldoc: render module %q: %w", module.Name, err)
	}
	return output, nil
}
