package identity

import (
	"fmt"
	"strings"
	"unicode"
)

// the punctuation set the user pool's password policy accepts
const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// checks the composite password policy locally so obviously bad passwords
// never reach the provider
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be at most 128 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	if !hasSymbol {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
