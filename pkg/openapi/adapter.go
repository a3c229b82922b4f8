// Package openapi lets OpenAPI 3 and Swagger 2 documents feed the generator.
// Their schema maps (`components.schemas` and `definitions`) are treated as
// the definitions mapping. The kin-openapi backed Validator lives in
// internal/openapi/validator.
package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-popogen/pkg/schema"
)

const DefaultAdapterName = "openapi"

// Validator checks a raw OpenAPI 3 document before definitions are read.
type Validator interface {
	Validate(ctx context.Context, raw []byte) error
}

// Adapter locates schema definitions inside OpenAPI and Swagger documents.
type Adapter struct {
	validator Validator
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// NewAdapter constructs an adapter. A nil validator skips document
// validation.
func NewAdapter(validator Validator) *Adapter {
	return &Adapter{validator: validator}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect claims documents declaring a top level `openapi` or `swagger` key.
func (a *Adapter) Detect(_ schema.Source, root *schema.Node) bool {
	return root.IsObject() && (root.Has("openapi") || root.Has("swagger"))
}

// Definitions validates OpenAPI 3 payloads and returns their
// `components.schemas` mapping. Swagger 2 documents use `definitions` and
// are not validated. A nil Node means the mapping is absent.
func (a *Adapter) Definitions(ctx context.Context, doc schema.Document, root *schema.Node) (schema.Definitions, error) {
	if err := ctx.Err(); err != nil {
		return schema.Definitions{}, err
	}
	if root == nil {
		return schema.Definitions{}, errors.New("openapi adapter: document is nil")
	}

	if root.Has("swagger") {
		defs, _ := root.Get("definitions")
		return schema.Definitions{Node: defs, Path: []string{"definitions"}}, nil
	}

	if a != nil && a.validator != nil {
		if err := a.validator.Validate(ctx, doc.Raw()); err != nil {
			return schema.Definitions{}, fmt.Errorf("openapi adapter: %s: %w", doc.Location(), err)
		}
	}

	path := []string{"components", "schemas"}
	defs, _ := root.Lookup(path...)
	return schema.Definitions{Node: defs, Path: path}, nil
}
