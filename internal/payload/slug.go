package payload

import (
	"regexp"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/gosimple/slug"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts "Samsung Galaxy S24 Ultra!!" -> "samsung-galaxy-s24-ultra".
// Every run of characters outside [a-z0-9] becomes one hyphen and hyphens at
// either end are dropped. Uniqueness is the repository's job.
func Slugify(name string) string {
	s := nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSuffix(s, "-")
}

// slugFor is Slugify plus the guarantee that the result is usable as a URL key.
func slugFor(name string) (string, error) {
	s := Slugify(name)
	if !slug.IsSlug(s) {
		return "", apperr.Validation("name must contain at least one letter or digit")
	}
	return s, nil
}
