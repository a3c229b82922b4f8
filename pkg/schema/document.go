package schema

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Format names the serialisation of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document wraps the raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format reports how the payload should be decoded. YAML is chosen by file
// extension only; JSON is a subset of YAML but the JSON decoder keeps number
// lexemes intact, so it stays the default.
func (d Document) Format() Format {
	location := strings.ToLower(d.Location())
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch path.Ext(location) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
