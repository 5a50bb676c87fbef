package helpers

import "unicode"

const minPasswordLength = 6

// ValidatePassword checks the account password policy and returns one message
// per violated rule. An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, "must be at least 6 characters long")
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}

	if !hasDigit {
		violations = append(violations, "must contain at least one digit")
	}
	if !hasLower {
		violations = append(violations, "must contain at least one lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "must contain at least one uppercase letter")
	}
	if !hasSymbol {
		violations = append(violations, "must contain at least one non-alphanumeric character")
	}

	return violations
}
