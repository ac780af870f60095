// Package assemble turns a validated character record into a complete LaTeX
// document for one variant profile.
//
// An Assembler walks the profile's group order, asks the section renderer for
// one fragment per group, estimates the size of the result and applies the
// profile's overflow policy before wrapping the fragments in the outer
// document template. Every call is independent: the assembler holds no
// per-record state and may be shared between goroutines.
package assemble
