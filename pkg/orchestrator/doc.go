// Package orchestrator wires the loader → decoder → adapter → extractor →
// renderer pipeline behind a single Generate call, with dependency injection
// friendly options for callers that want to swap any stage.
package orchestrator
