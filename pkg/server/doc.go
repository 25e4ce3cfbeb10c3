// Package server serves the registration form as server-rendered HTML.
// Each browser session owns a form.Form, tied to a cookie, and its posts are
// replayed against that form as change events. Validation, enablement and
// submission therefore follow the same rules as every other frontend.
package server
