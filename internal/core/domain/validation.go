package domain

import "regexp"

// Nepali mobile numbers: one of three fixed operator prefixes followed by
// eight more digits. Both patterns are normative: they mirror the landing
// page's client-side rules exactly.
var (
	phonePattern = regexp.MustCompile(`^(98|97|96)\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidPhone reports whether s is an acceptable Nepali mobile number.
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidationError reports the first preorder form rule that failed. The
// submission pipeline short-circuits on it: no order is constructed and no
// state is mutated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
