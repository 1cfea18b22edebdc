package session

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateCredentials checks a login form before any request is issued.
func ValidateCredentials(creds Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("please enter both email and password")
	}
	return nil
}

// ValidateRegistration checks a signup form before any request is issued,
// mirroring the server's password policy so obviously-bad submissions never
// leave the client.
func ValidateRegistration(reg Registration) error {
	if len(strings.TrimSpace(reg.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if !strings.Contains(reg.Email, "@") {
		return fmt.Errorf("a valid email address is required")
	}
	if len(reg.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !strongPassword(reg.Password) {
		return fmt.Errorf("password needs an upper-case letter, a lower-case letter, a digit, and a special character")
	}
	if reg.Password != reg.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func strongPassword(pw string) bool {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
