// Package model describes the registration form declaratively: the four
// controls, their labels, option lists and defaults. Renderers consume a
// FormModel to lay out controls; validation rules live in pkg/validation and
// runtime state lives in pkg/form.
package model
