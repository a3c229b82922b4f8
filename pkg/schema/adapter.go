package schema

import "context"

// FormatAdapter locates the definitions mapping inside a decoded document.
// Adapters exist per input dialect (plain JSON Schema, OpenAPI).
type FormatAdapter interface {
	Name() string
	Detect(src Source, root *Node) bool
	Definitions(ctx context.Context, doc Document, root *Node) (Definitions, error)
}

// Definitions is the located definitions mapping plus the document path it was
// found at, used to prefix extraction errors.
type Definitions struct {
	Node *Node
	Path []string
}
