package popogen

import (
	"context"

	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
	"github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/orchestrator"
	"github.com/goliatone/go-popogen/pkg/render"
)

// Model aliases the extracted class model for callers working from the root
// package.
type Model = model.Model

// Result aliases the orchestrator run summary.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateFiles loads the schema at source and writes one class file per
// definition into dir using the bundled template. It is the simplest entry
// point for callers that just want files on disk.
func GenerateFiles(ctx context.Context, source pkgjsonschema.Source, dir string, options ...orchestrator.Option) (Result, error) {
	sink, err := render.NewDirectorySink(dir)
	if err != nil {
		return Result{}, err
	}
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithSink(sink)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{Source: source})
}

// GenerateFromDocument renders a pre-loaded document into memory, bypassing
// the loader stage. The returned map is keyed by file name.
func GenerateFromDocument(ctx context.Context, doc pkgjsonschema.Document, options ...orchestrator.Option) (map[string][]byte, error) {
	sink := render.NewMemorySink()
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithSink(sink)}, options...)...)
	if _, err := gen.Generate(ctx, orchestrator.Request{Document: &doc}); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(sink.Names()))
	for _, name := range sink.Names() {
		content, _ := sink.File(name)
		out[name] = content
	}
	return out, nil
}

// ExtractFile returns the models of a schema file without rendering them.
func ExtractFile(ctx context.Context, path string) ([]Model, error) {
	result, err := orchestrator.New().Generate(ctx, orchestrator.Request{Source: pkgjsonschema.SourceFromFile(path)})
	if err != nil {
		return nil, err
	}
	return result.Models, nil
}
