package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopKey(t *testing.T) {
	assert.Equal(t, "desktops/desk_1/os-notes", DesktopKey("desk_1", "os-notes"))
}

func TestBlobFile(t *testing.T) {
	file, err := BlobFile("/data", "desktops/desk_1/desktop-icon-positions")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "desktops", "desk_1", "desktop-icon-positions.json"), file)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"os-notes", false},
		{"desktops/desk_1/os-notes", false},
		{"", true},
		{"../escape", true},
		{"desktops//os-notes", true},
		{"/absolute", true},
		{"with space", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
