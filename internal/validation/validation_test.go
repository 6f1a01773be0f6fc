package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid lowercase",
			username: "alice",
			wantErr:  false,
		},
		{
			name:     "valid mixed case with digits",
			username: "Alice_42",
			wantErr:  false,
		},
		{
			name:     "valid minimum length",
			username: "abc",
			wantErr:  false,
		},
		{
			name:     "valid maximum length",
			username: strings.Repeat("a", MaxUsernameLen),
			wantErr:  false,
		},
		{
			name:     "empty",
			username: "",
			wantErr:  true,
			errMsg:   "cannot be empty",
		},
		{
			name:     "too short",
			username: "ab",
			wantErr:  true,
			errMsg:   "at least 3 characters",
		},
		{
			name:     "too long",
			username: strings.Repeat("a", MaxUsernameLen+1),
			wantErr:  true,
			errMsg:   "must not exceed 32",
		},
		{
			name:     "contains space",
			username: "alice smith",
			wantErr:  true,
			errMsg:   "can only contain",
		},
		{
			name:     "contains hyphen",
			username: "alice-smith",
			wantErr:  true,
			errMsg:   "can only contain",
		},
		{
			name:     "contains non-latin letters",
			username: "алиса",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.NoError(t, ValidatePassword("12345678"))

	err := ValidatePassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	err = ValidatePassword("short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestValidateVariableCategory(t *testing.T) {
	for _, c := range VariableCategories {
		assert.NoError(t, ValidateVariableCategory(c))
	}

	for _, c := range []string{"Food", "rent", "emi", ""} {
		assert.Error(t, ValidateVariableCategory(c), "category %q", c)
	}
}

func TestValidateMonth(t *testing.T) {
	assert.NoError(t, ValidateMonth("January"))
	assert.NoError(t, ValidateMonth("December"))

	for _, m := range []string{"january", "Jan", "Smarch", ""} {
		assert.Error(t, ValidateMonth(m), "month %q", m)
	}
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 1, MonthIndex("January"))
	assert.Equal(t, 6, MonthIndex("June"))
	assert.Equal(t, 12, MonthIndex("December"))
	assert.Equal(t, 0, MonthIndex("nope"))
}
