// Package form implements the registration form component: it owns the
// current field values, the per-field validation messages, the outcome of
// the last submission and the derived enablement flag.
//
// Every Change re-validates only the changed field and then recomputes the
// enablement flag against the whole state. Submit refuses to run while the
// form is disabled or another submission is in flight; on success the values
// reset to their defaults, on failure they are kept.
//
//	f := form.New(client.New(client.WithEndpoint(url)))
//	_ = f.Change(form.ChangeEvent{Name: "username", Type: "text", Value: "gopher"})
//	if f.Enabled() {
//	    outcome, err := f.Submit(ctx)
//	    ...
//	}
package form
