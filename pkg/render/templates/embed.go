// Package templates bundles the default class template.
package templates

import (
	"embed"
	"io/fs"
)

// ClassTemplate is the name of the bundled class template, without extension.
const ClassTemplate = "_class"

//go:embed _class.tpl
var embeddedTemplates embed.FS

// FS exposes the bundled templates so callers can render them directly or
// layer their own folder on top.
func FS() fs.FS {
	return embeddedTemplates
}
