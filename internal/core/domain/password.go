package domain

import (
	"fmt"
	"unicode/utf8"
)

// PasswordComplexityError reports the first complexity rule a candidate
// password violated. The reason is safe to return to the client.
type PasswordComplexityError struct {
	Reason string
}

func (e *PasswordComplexityError) Error() string {
	return fmt.Sprintf("password is not complex enough: %s", e.Reason)
}

// EnforcePasswordComplexity checks the rules in a fixed order and returns a
// PasswordComplexityError for the first one violated. The check is
// short-circuiting: a password that is both too short and missing a digit
// reports only the length violation.
func EnforcePasswordComplexity(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return &PasswordComplexityError{Reason: "password must be at least 8 characters long"}
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper {
		return &PasswordComplexityError{Reason: "password must contain at least one uppercase letter"}
	}
	if !hasLower {
		return &PasswordComplexityError{Reason: "password must contain at least one lowercase letter"}
	}
	if !hasDigit {
		return &PasswordComplexityError{Reason: "password must contain at least one digit"}
	}
	if !hasSpecial {
		return &PasswordComplexityError{Reason: "password must contain at least one special character"}
	}
	return nil
}
