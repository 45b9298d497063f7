package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxEmailLength   = 255
	MaxIDLength      = 128
	MaxNameLength    = 256
	MaxSubjectLength = 256
	MaxTitleLength   = 256
	MaxMessageLength = 16 * 1024
	MaxNotesLength   = 256 * 1024
	MaxQueryLength   = 256
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// EmailPattern is a basic email validation
	EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// HexColorPattern matches #rgb and #rrggbb
	HexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	// DatePattern matches calendar dates in YYYY-MM-DD form
	DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes never reach storage
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string, required bool) error {
	if err := ValidateString(email, "email", 0, MaxEmailLength, required); err != nil {
		return err
	}

	if email != "" && !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateName validates a name field
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidateMessage validates a contact message body
func ValidateMessage(message string) error {
	if err := ValidateString(strings.TrimSpace(message), "message", 1, MaxMessageLength, true); err != nil {
		return err
	}
	return nil
}

// ValidateHexColor validates a CSS hex color such as #3b82f6
func ValidateHexColor(color, fieldName string) error {
	if !HexColorPattern.MatchString(color) {
		return fmt.Errorf("%s must be a hex color like #3b82f6", fieldName)
	}
	return nil
}

// ValidateDate validates a YYYY-MM-DD calendar date
func ValidateDate(date, fieldName string) error {
	if !DatePattern.MatchString(date) {
		return fmt.Errorf("%s must be formatted as YYYY-MM-DD", fieldName)
	}
	return nil
}
