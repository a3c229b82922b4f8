package popogen

import (
	"io/fs"

	"github.com/goliatone/go-popogen/pkg/render/templates"
)

// EmbeddedTemplates exposes the bundled class template so callers can reuse
// or extend it without importing the templates package directly.
func EmbeddedTemplates() fs.FS {
	return templates.FS()
}
