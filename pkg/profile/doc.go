// Package profile describes output variants declaratively. A Profile lists the
// groups to render and their order, per-group field allow-lists and entry
// rules, a page budget and the policy applied when the budget is exceeded.
//
// Profiles are YAML (or JSON) documents. The built-in "long" and "short"
// profiles are embedded; additional ones are loaded with LoadFS.
package profile
