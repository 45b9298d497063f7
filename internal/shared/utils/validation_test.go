package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min, max int
		required bool
		wantErr  bool
	}{
		{"required empty", "", 1, 10, true, true},
		{"optional empty", "", 1, 10, false, false},
		{"too short", "a", 2, 10, true, true},
		{"too long", strings.Repeat("a", 11), 1, 10, true, true},
		{"null byte", "a\x00b", 1, 10, true, true},
		{"ok", "hello", 1, 10, true, false},
		{"multibyte counted as runes", "💼💼", 1, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(tt.value, "field", tt.min, tt.max, tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("window-3", "id", true))
	assert.NoError(t, ValidateID("desk_01ARZ3NDEKTSV4RRFFQ69G5FAV", "id", true))
	assert.Error(t, ValidateID("../etc", "id", true))
	assert.Error(t, ValidateID("", "id", true))
	assert.NoError(t, ValidateID("", "id", false))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com", true))
	assert.Error(t, ValidateEmail("jane@", true))
	assert.Error(t, ValidateEmail("", true))
	assert.NoError(t, ValidateEmail("", false))
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("Hello there"))
	assert.Error(t, ValidateMessage("   "))
	assert.Error(t, ValidateMessage(strings.Repeat("x", MaxMessageLength+1)))
}

func TestValidateHexColor(t *testing.T) {
	assert.NoError(t, ValidateHexColor("#3b82f6", "accent"))
	assert.NoError(t, ValidateHexColor("#FFF", "accent"))
	assert.Error(t, ValidateHexColor("3b82f6", "accent"))
	assert.Error(t, ValidateHexColor("#3b82f", "accent"))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2025-03-14", "date"))
	assert.Error(t, ValidateDate("14/03/2025", "date"))
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a & b < c", "a & b < c"},
		{"<b>bold</b> move", "bold move"},
		{"<script>alert(1)</script>hi", "hi"},
		{"line one\nline two", "line one\nline two"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTags(tt.in), tt.in)
	}
}

func TestCleanLine(t *testing.T) {
	assert.Equal(t, "Team sync", CleanLine("  <i>Team</i>\n  sync "))
	assert.Equal(t, "", CleanLine("<img src=x>"))
}
