package jsonschema

import "github.com/goliatone/go-popogen/pkg/schema"

// Document wraps the raw JSON Schema payload and its origin. It aliases the
// canonical schema.Document so loaders and adapters share one type.
type Document = schema.Document

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	return schema.NewDocument(src, raw)
}
