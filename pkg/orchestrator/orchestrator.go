package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-popogen/internal/jsonschema/loader"
	"github.com/goliatone/go-popogen/internal/logger"
	openapivalidator "github.com/goliatone/go-popogen/internal/openapi/validator"
	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
	"github.com/goliatone/go-popogen/pkg/model"
	pkgopenapi "github.com/goliatone/go-popogen/pkg/openapi"
	"github.com/goliatone/go-popogen/pkg/render"
	"github.com/goliatone/go-popogen/pkg/render/template"
	"github.com/goliatone/go-popogen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-popogen/pkg/render/templates"
	"github.com/goliatone/go-popogen/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader pkgjsonschema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithAdapters replaces the default adapters. Detection tries them in the
// order given.
func WithAdapters(adapters ...schema.FormatAdapter) Option {
	return func(o *Orchestrator) {
		registry := NewAdapterRegistry()
		for _, adapter := range adapters {
			if adapter == nil {
				continue
			}
			if err := registry.Register(adapter); err != nil {
				o.initialiseErr = err
				return
			}
		}
		o.adapterRegistry = registry
	}
}

// WithAdapterRegistry injects a prepared adapter registry.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapterRegistry = registry
	}
}

// WithTemplateEngine injects the engine used to render models.
func WithTemplateEngine(engine template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithSink sets where rendered files go. Without a sink Generate only
// extracts models.
func WithSink(sink render.Sink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

// WithTemplateName overrides the template rendered per model.
func WithTemplateName(name string) Option {
	return func(o *Orchestrator) {
		o.templateName = strings.TrimSpace(name)
	}
}

// WithExtension overrides the output file extension.
func WithExtension(ext string) Option {
	return func(o *Orchestrator) {
		o.extension = strings.TrimSpace(ext)
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithExternalRefs lets OpenAPI validation follow external references.
func WithExternalRefs(enabled bool) Option {
	return func(o *Orchestrator) {
		o.externalRefs = enabled
	}
}

// Orchestrator coordinates the full pipeline from schema document to
// generated class files. Missing dependencies fall back to the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	loader          pkgjsonschema.Loader
	adapterRegistry *AdapterRegistry
	engine          template.TemplateRenderer
	sink            render.Sink
	templateName    string
	extension       string
	logger          logger.Logger
	externalRefs    bool
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *schema.Document

	// Format forces an adapter by name instead of detecting one.
	Format string
}

// Result reports what a run produced.
type Result struct {
	// Adapter names the format adapter that located the definitions.
	Adapter string
	// Models holds the extracted models in document order.
	Models []model.Model
	// Files lists the file names handed to the sink, in model order.
	Files []string
}

// Generate loads, decodes and extracts the document, then renders one file
// per definition through the sink. Extraction completes before anything is
// rendered, so a schema error writes no files.
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

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Result{}, err
	}

	root, err := schema.Decode(doc)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %s: %w", doc.Location(), err)
	}

	adapter, err := o.resolveAdapter(req, doc.Source(), root)
	if err != nil {
		return Result{}, err
	}
	o.logger.Debug("using %s adapter for %s", adapter.Name(), doc.Location())

	models, err := o.extractModels(ctx, adapter, doc, root)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: extract models: %w", err)
	}
	o.logger.Info("extracted %d model(s) from %s", len(models), doc.Location())

	result := Result{Adapter: adapter.Name(), Models: models}
	if o.sink == nil {
		return result, nil
	}

	driver, err := render.NewDriver(o.engine, o.sink,
		render.WithTemplateName(o.templateName),
		render.WithExtension(o.extension),
		render.WithLogger(o.logger),
	)
	if err != nil {
		return result, fmt.Errorf("orchestrator: %w", err)
	}

	files, err := driver.RenderAll(ctx, models)
	result.Files = files
	if err != nil {
		return result, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgjsonschema.NewLoaderOptions())
	}
	if o.adapterRegistry == nil {
		registry := NewAdapterRegistry()
		registry.MustRegister(pkgopenapi.NewAdapter(openapivalidator.New(o.externalRefs)))
		registry.MustRegister(pkgjsonschema.NewAdapter())
		o.adapterRegistry = registry
	}
	if o.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(templates.FS()))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default template engine: %w", err)
		} else {
			o.engine = engine
		}
	}
	if o.templateName == "" {
		o.templateName = templates.ClassTemplate
	}
	if o.extension == "" {
		o.extension = render.DefaultExtension
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}
}
