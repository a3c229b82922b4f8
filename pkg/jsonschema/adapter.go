package jsonschema

import (
	"context"
	"errors"

	"github.com/goliatone/go-popogen/pkg/schema"
)

const DefaultAdapterName = "jsonschema"

const definitionsKey = "definitions"

// Adapter locates the `definitions` mapping of a plain JSON Schema document.
type Adapter struct{}

var _ schema.FormatAdapter = (*Adapter)(nil)

// NewAdapter constructs a JSON Schema adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect accepts any object document that is not OpenAPI or Swagger. A
// document lacking `definitions` is still claimed so the missing key is
// reported instead of "no adapter".
func (a *Adapter) Detect(_ schema.Source, root *schema.Node) bool {
	if !root.IsObject() {
		return false
	}
	return !root.Has("openapi") && !root.Has("swagger")
}

// Definitions returns the top level `definitions` mapping. A nil Node means
// the key is absent.
func (a *Adapter) Definitions(ctx context.Context, _ schema.Document, root *schema.Node) (schema.Definitions, error) {
	if err := ctx.Err(); err != nil {
		return schema.Definitions{}, err
	}
	if root == nil {
		return schema.Definitions{}, errors.New("jsonschema adapter: document is nil")
	}
	defs, _ := root.Get(definitionsKey)
	return schema.Definitions{Node: defs, Path: []string{definitionsKey}}, nil
}
