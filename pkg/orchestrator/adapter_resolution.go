package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/schema"
)

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	if o.loader == nil {
		return schema.Document{}, errors.New("orchestrator: loader is nil")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveAdapter(req Request, src schema.Source, root *schema.Node) (schema.FormatAdapter, error) {
	if o.adapterRegistry == nil {
		return nil, errors.New("orchestrator: adapter registry is nil")
	}

	if format := strings.TrimSpace(req.Format); format != "" {
		return o.adapterRegistry.Get(format)
	}

	adapter := o.adapterRegistry.Detect(src, root)
	if adapter == nil {
		return nil, fmt.Errorf("orchestrator: unable to detect format (registered: %s)", strings.Join(o.adapterRegistry.List(), ", "))
	}
	return adapter, nil
}

// extractModels locates the definitions mapping through the adapter and
// runs the extractor over it.
func (o *Orchestrator) extractModels(ctx context.Context, adapter schema.FormatAdapter, doc schema.Document, root *schema.Node) ([]model.Model, error) {
	defs, err := adapter.Definitions(ctx, doc, root)
	if err != nil {
		return nil, err
	}
	if defs.Node == nil {
		return nil, missingDefinitions(defs.Path)
	}
	return model.ExtractDefinitions(defs.Node, defs.Path...)
}

func missingDefinitions(path []string) error {
	if len(path) == 0 {
		return &model.MissingFieldError{Field: "definitions"}
	}
	parent := append([]string(nil), path[:len(path)-1]...)
	return &model.MissingFieldError{Path: parent, Field: path[len(path)-1]}
}
