package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern defines the accepted username format:
// latin letters, digits and underscore, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen is the minimum username length
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 32
)

// ValidateUsername checks that username matches the accepted format.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	const minPasswordLen = 8

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}

// VariableCategories lists the categories a variable expense may use.
// Each maps onto a dedicated field of the monthly budget entry during
// finalization, so anything outside this set is rejected at creation
// time rather than silently dropped later.
var VariableCategories = []string{"food", "travel", "shopping", "other"}

// ValidateVariableCategory checks that category names one of the four
// recognized variable expense categories.
func ValidateVariableCategory(category string) error {
	for _, c := range VariableCategories {
		if category == c {
			return nil
		}
	}
	return fmt.Errorf("unknown category %q: must be one of food, travel, shopping, other", category)
}

// MonthNames lists calendar months in order. Budget entries key months
// by their English names.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ValidateMonth checks that month is a full English month name.
func ValidateMonth(month string) error {
	for _, m := range MonthNames {
		if month == m {
			return nil
		}
	}
	return fmt.Errorf("invalid month %q", month)
}

// MonthIndex returns the 1-based calendar index of a month name, or 0
// if the name is not a month.
func MonthIndex(month string) int {
	for i, m := range MonthNames {
		if month == m {
			return i + 1
		}
	}
	return 0
}
