package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-srcgen/internal/namealloc"
	"github.com/goliatone/go-srcgen/internal/openapi"
	"github.com/goliatone/go-srcgen/pkg/emit"
	"github.com/goliatone/go-srcgen/pkg/lang"
	"github.com/goliatone/go-srcgen/pkg/lang/golang"
	"github.com/goliatone/go-srcgen/pkg/lang/htmldoc"
	"github.com/goliatone/go-srcgen/pkg/lang/typescript"
	"github.com/goliatone/go-srcgen/pkg/logging"
	"github.com/goliatone/go-srcgen/pkg/model"
)

const defaultTargetName = "go"

// Loader turns source documents into the type module targets render.
type Loader interface {
	LoadModule(ctx context.Context, path string) (model.Module, error)
	ParseModule(ctx context.Context, data []byte) (model.Module, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a target registry.
func WithRegistry(registry *lang.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultTarget overrides the target used when a request omits an
// explicit Target field.
func WithDefaultTarget(name string) Option {
	return func(o *Orchestrator) {
		o.defaultTarget = name
	}
}

// WithNamingProfile applies a YAML naming profile (reserved words, renames)
// to the default allocator wired into every request.
func WithNamingProfile(path string) Option {
	return func(o *Orchestrator) {
		o.profilePath = path
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from source document to
// generated text. It applies sensible defaults (OpenAPI loader, built-in
// targets) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	loader          Loader
	registry        *lang.Registry
	defaultTarget   string
	profilePath     string
	logger          zerolog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultTarget: defaultTargetName,
		logger:        logging.GetLogger("orchestrator"),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate one output file.
type Request struct {
	// SourcePath locates the source document on disk. Optional when Document
	// or Module is supplied.
	SourcePath string

	// Document allows callers to bypass file loading with a raw payload.
	Document []byte

	// Module bypasses the loader entirely when the caller already has a type
	// module.
	Module *model.Module

	// Target names the language target. If empty, the orchestrator falls
	// back to the configured default.
	Target string

	// PackageName overrides the package/module name derived from the source.
	PackageName string

	// Header lines are prepended to output as already-formatted comments.
	Header []string
}

// Result pairs the render output with the suggested file name.
type Result struct {
	Target   string
	Filename string
	Output   emit.Output
}

// Generate executes the loader → type module → target sequence and returns
// the rendered output. Issue-annotated regions are logged, never fatal.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	module, err := o.resolveModule(ctx, req)
	if err != nil {
		return Result{}, err
	}

	target, err := o.targetFor(req.Target)
	if err != nil {
		return Result{}, err
	}

	options := lang.Options{
		PackageName: req.PackageName,
		Header:      req.Header,
	}
	if o.profilePath != "" {
		profile, err := namealloc.LoadProfile(o.profilePath)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: naming profile: %w", err)
		}
		options.Allocator = namealloc.New(namealloc.WithProfile(profile))
	}

	output, err := target.Generate(ctx, module, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: generate %q output: %w", target.Name(), err)
	}

	for _, issue := range output.Issues() {
		o.logger.Warn().
			Str("target", target.Name()).
			Str("module", module.Name).
			Msg(issue)
	}

	return Result{
		Target:   target.Name(),
		Filename: filename(module.Name, target.FileExtension()),
		Output:   output,
	}, nil
}

func (o *Orchestrator) resolveModule(ctx context.Context, req Request) (model.Module, error) {
	if req.Module != nil {
		return *req.Module, nil
	}
	if len(req.Document) > 0 {
		module, err := o.loader.ParseModule(ctx, req.Document)
		if err != nil {
			return model.Module{}, fmt.Errorf("orchestrator: parse document: %w", err)
		}
		return module, nil
	}
	if req.SourcePath == "" {
		return model.Module{}, errors.New("orchestrator: source path, document, or module is required")
	}
	module, err := o.loader.LoadModule(ctx, req.SourcePath)
	if err != nil {
		return model.Module{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return module, nil
}

func (o *Orchestrator) targetFor(name string) (lang.Target, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: target registry is nil")
	}

	requested := name
	if requested == "" {
		requested = o.defaultTarget
	}

	target, err := o.registry.Get(requested)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: target %q: %w", name, err)
		}
		names := o.registry.List()
		if len(names) == 0 {
			return nil, errors.New("orchestrator: no targets registered")
		}
		return o.registry.Get(names[0])
	}
	return target, nil
}

// Targets lists the registered target names.
func (o *Orchestrator) Targets() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = openapi.New()
	}
	if o.registry == nil {
		o.registry = lang.NewRegistry()
		o.registry.MustRegister(golang.New())
		o.registry.MustRegister(typescript.New())
		docs, err := htmldoc.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: htmldoc target: %w", err)
		} else {
			o.registry.MustRegister(docs)
		}
	}
	if o.defaultTarget == "" {
		o.defaultTarget = defaultTargetName
	}

	o.defaultsApplied = true
}

func filename(moduleName, extension string) string {
	slug := strings.ToLower(strings.TrimSpace(moduleName))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "types"
	}
	return slug + extension
}
