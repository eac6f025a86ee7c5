// Package validation holds request field validation shared by the server
// handlers and the command-line client.
package validation

import (
	"fmt"
	"regexp"
)

// emailPattern is a pragmatic check, not a full RFC 5322 parser: one '@',
// a non-empty local part and a dotted domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinNameLen is the minimum display name length.
	MinNameLen = 2
	// MaxNameLen is the maximum display name length.
	MaxNameLen = 100

	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 6
	// MaxPasswordLen is the maximum password length.
	MaxPasswordLen = 50

	// MinAge is the minimum account age.
	MinAge = 18
	// MaxAge is the maximum account age.
	MaxAge = 120
)

// ValidateName checks the display name length.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < MinNameLen {
		return fmt.Errorf("name must be at least %d characters long", MinNameLen)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}

// ValidateEmail checks that the value looks like an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks the password length bounds.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateAge checks the account age bounds.
func ValidateAge(age int) error {
	if age < MinAge {
		return fmt.Errorf("age must be at least %d", MinAge)
	}
	if age > MaxAge {
		return fmt.Errorf("age must not exceed %d", MaxAge)
	}
	return nil
}
