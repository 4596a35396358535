package catalog

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// MakeSlug derives a URL-safe slug from a category name: lower-case,
// runs of non-alphanumeric characters collapsed to a single hyphen, no
// leading or trailing hyphen.
// Example: "Web & Mobile Dev!" -> "web-mobile-dev".
//
// Slugs are derived on create only; editing a category never re-derives
// the slug from name changes.
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = nonAlnum.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}
