package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 1920, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 1080, cfg.Desktop.ViewportHeight)
	assert.Equal(t, 2300*time.Millisecond, cfg.Desktop.BootDuration)
	assert.Equal(t, 3*time.Second, cfg.Desktop.ShutdownDuration)
	assert.Equal(t, 1000, cfg.Desktop.MaxDesktops)
	assert.Empty(t, cfg.Contact.RelayURL)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
		"STORAGE_DRIVER":          "file",
		"STORAGE_PATH":            "/var/lib/deskos",
		"DESKTOP_VIEWPORT_WIDTH":  "1280",
		"DESKTOP_VIEWPORT_HEIGHT": "720",
		"BOOT_DURATION":           "1s",
		"SHUTDOWN_DURATION":       "500ms",
		"MAX_DESKTOPS":            "5",
		"CATALOG_DIR":             "/etc/deskos/apps",
		"CONTENT_FILE":            "/etc/deskos/content.yaml",
		"RESUME_FILE":             "/etc/deskos/resume.pdf",
		"CONTACT_RELAY_URL":       "https://relay.example.com/send",
		"CONTACT_TIMEOUT":         "3s",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, StorageConfig{Driver: "file", Path: "/var/lib/deskos"}, cfg.Storage)
	assert.Equal(t, DesktopConfig{
		ViewportWidth:    1280,
		ViewportHeight:   720,
		BootDuration:     time.Second,
		ShutdownDuration: 500 * time.Millisecond,
		MaxDesktops:      5,
	}, cfg.Desktop)
	assert.Equal(t, CatalogConfig{
		Dir:         "/etc/deskos/apps",
		ContentFile: "/etc/deskos/content.yaml",
		ResumeFile:  "/etc/deskos/resume.pdf",
	}, cfg.Catalog)
	assert.Equal(t, ContactConfig{RelayURL: "https://relay.example.com/send", Timeout: 3 * time.Second}, cfg.Contact)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "redis"}},
		{"file without path", map[string]string{"STORAGE_DRIVER": "file", "STORAGE_PATH": ""}},
		{"zero viewport", map[string]string{"DESKTOP_VIEWPORT_WIDTH": "0"}},
		{"zero desktops", map[string]string{"MAX_DESKTOPS": "0"}},
		{"bad duration", map[string]string{"BOOT_DURATION": "soon"}},
		{"bad number", map[string]string{"RATE_LIMIT_RPS": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	assert.Equal(t, Default(), LoadOrDefault())
}
