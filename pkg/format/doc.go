// Package format derives computed character values and turns record values
// into SafeText for a target markup syntax. Derived values (ability modifiers,
// saves, skill totals, proficiency bonus, passive scores, spell save DC and
// attack bonuses) are pure functions of validated primitive fields and are
// recomputed on every call; caller-supplied versions are never trusted.
// Out-of-range numbers are clamped and reported as warnings rather than errors.
package format
