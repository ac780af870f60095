// Package section turns one schema group of a character record into a markup
// fragment for one profile.
//
// Every group is a Section variant that knows how to Build its content (rows
// of scalar fields and a list of entries) from the record and the derived
// values. The Renderer is generic: it applies the profile rule for the group,
// formats and escapes values, and executes the group template, falling back
// to sections/generic when the group has no template of its own.
package section
