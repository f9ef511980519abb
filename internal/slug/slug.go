package slug

import (
	"strings"

	gosimple "github.com/gosimple/slug"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
)

// Make lowercases, transliterates and hyphenates s.
func Make(s string) string {
	return gosimple.Make(s)
}

// Resolve returns the explicit slug when one is supplied, otherwise the slug
// derived from source. maxLen bounds the derived value to the column width.
func Resolve(explicit *string, source string, maxLen int) (string, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		s := strings.TrimSpace(*explicit)
		if !gosimple.IsSlug(s) {
			return "", apperror.NewValidation("invalid slug %q", s)
		}
		if maxLen > 0 && len(s) > maxLen {
			return "", apperror.NewValidation("slug must be at most %d characters", maxLen)
		}
		return s, nil
	}

	s := Make(source)
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "", apperror.NewValidation("cannot derive a slug from %q", source)
	}
	return s, nil
}
