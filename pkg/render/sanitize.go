package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips markup from a message received from the registration
// endpoint. The result is plain text; templates escape it again on output.
func PlainText(message string) string {
	if message == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(message)))
}
