// Package template defines the template contract section and document
// rendering depend on. The gotemplate subpackage implements it with pongo2.
package template
