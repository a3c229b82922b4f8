package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-popogen/pkg/openapi"
)

// Validator implements pkgopenapi.Validator using kin-openapi.
type Validator struct {
	allowExternalRefs bool
}

var _ pkgopenapi.Validator = (*Validator)(nil)

// New constructs a Validator. External references stay disabled unless
// allowExternalRefs is set, keeping validation offline.
func New(allowExternalRefs bool) *Validator {
	return &Validator{allowExternalRefs: allowExternalRefs}
}

// Validate loads the raw OpenAPI 3 payload and runs kin-openapi's document
// validation over it.
func (v *Validator) Validate(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("openapi validator: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = v.allowExternalRefs

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return fmt.Errorf("openapi validator: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return fmt.Errorf("openapi validator: %w", err)
	}
	return nil
}
