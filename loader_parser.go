package popogen

import (
	internalLoader "github.com/goliatone/go-popogen/internal/jsonschema/loader"
	openapivalidator "github.com/goliatone/go-popogen/internal/openapi/validator"
	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-popogen/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgjsonschema.LoaderOption) pkgjsonschema.Loader {
	cfg := pkgjsonschema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewOpenAPIValidator constructs the kin-openapi backed document validator.
func NewOpenAPIValidator(allowExternalRefs bool) pkgopenapi.Validator {
	return openapivalidator.New(allowExternalRefs)
}
