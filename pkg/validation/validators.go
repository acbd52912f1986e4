package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Usernames: letters, digits, underscore, dot, hyphen. Doubles as the
	// first path segment of public resume links.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Slugs form the second path segment of public links: lowercase
	// letters, digits and hyphens only.
	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("username", ValidUsername)
	_ = v.RegisterValidation("slug", ValidSlug)
}

// ValidUsername validates that a string is URL-safe as a username
func ValidUsername(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return usernameRegex.MatchString(val)
}

// ValidSlug validates that a string is usable as a public link slug
func ValidSlug(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return slugRegex.MatchString(val)
}
