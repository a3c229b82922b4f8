// Package popogen turns the definitions of a JSON Schema or OpenAPI document
// into plain old Python object classes, one file per definition.
//
// The root package offers shortcuts over pkg/orchestrator; callers that need
// custom loaders, adapters, templates or sinks should use that package
// directly.
package popogen
