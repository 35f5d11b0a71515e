// Package template defines the engine seam used by the template fallback
// output path. The gotemplate subpackage provides the default pongo2-backed
// implementation.
package template
