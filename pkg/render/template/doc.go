// Package template defines the engine contract the renderer driver uses to
// turn a class model into source text. The gotemplate subpackage implements
// it with pongo2, which reads Jinja style templates.
package template
