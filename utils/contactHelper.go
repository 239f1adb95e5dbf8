package utils

import "regexp"

// Contact field patterns used when a customer is created inline from the
// order screens. Phone numbers are local 10-digit mobile numbers and the
// identity number is the 12-digit national id.
var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^0\d{9}$`)
	identityRegex = regexp.MustCompile(`^\d{12}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidLocalPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidIdentityNumber(identity string) bool {
	return identityRegex.MatchString(identity)
}
