package resume

import (
	"regexp"
	"strings"
)

// Contact-field validators. Pure predicates with no side effects; used both to
// gate required-field completion and to accept extracted values as-is.

var (
	validEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validPhoneRe = regexp.MustCompile(`^\+?[\d\s\-().]{10,}$`)
	validNameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

func ValidateEmail(email string) bool {
	return validEmailRe.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return validPhoneRe.MatchString(phone)
}

func ValidateName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && validNameRe.MatchString(trimmed)
}
