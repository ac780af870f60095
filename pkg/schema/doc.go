// Package schema defines the character record consumed by the sheet renderer
// together with the declarative field table used to validate raw input.
// Validate walks a decoded JSON/YAML map against that table, rejects unknown
// or malformed fields, enforces cross-field invariants (hit point bounds,
// source attribution) and returns every violation at once as a
// *ValidationError. Values that are derived at render time (ability
// modifiers, proficiency bonus, passive scores) are accepted as known fields
// but never bound into the record; they are reported through
// CharacterRecord.Supplied so the formatter can flag disagreements.
package schema
