package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags removes markup from user text. Entities escaped by the policy
// are decoded again so plain text round-trips unchanged.
func StripTags(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// CleanLine strips markup and collapses the result onto one trimmed line
func CleanLine(s string) string {
	return strings.Join(strings.Fields(StripTags(s)), " ")
}
