package jsonschema

import "github.com/goliatone/go-popogen/pkg/schema"

// Source identifies where a JSON Schema document originated.
type Source = schema.Source

// SourceKind enumerates the loader modalities.
type SourceKind = schema.SourceKind

const (
	SourceKindFile = schema.SourceKindFile
	SourceKindFS   = schema.SourceKindFS
	SourceKindURL  = schema.SourceKindURL
)

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return schema.SourceFromFile(path)
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return schema.SourceFromFS(name)
}

// SourceFromURL validates the URL and returns a Source.
func SourceFromURL(raw string) (Source, error) {
	return schema.SourceFromURL(raw)
}
