// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips all markup. Titles, descriptions, request details, and chat
// messages are plain text; anything that looks like HTML in them is someone
// trying their luck.
var policy = bluemonday.StrictPolicy()

// Text strips markup from a free-text field and trims surrounding space.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
