// Package validation holds the fixed registration schema. Each field has one
// rule built from small composable checks (required, trim, length bounds,
// allowed values); every failing check maps to a fixed message. Rules are
// independent of each other, so a single field can be validated on its own
// and whole-form validity is the conjunction of the per-field results.
package validation
