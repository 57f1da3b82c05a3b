// internal/app/system/sanitize/sanitize.go

// Package sanitize cleans user-supplied display strings before they are
// stored. Group and user names are free-form text that later ends up in
// clients' UIs, so HTML is stripped entirely.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxNameLen bounds group and user display names.
const MaxNameLen = 100

var strict = bluemonday.StrictPolicy()

// DisplayName strips all HTML from s, unescapes entities the policy
// introduced, and trims surrounding whitespace.
func DisplayName(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
