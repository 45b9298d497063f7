package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Desktop   DesktopConfig
	Catalog   CatalogConfig
	Contact   ContactConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects where per-desktop data lives.
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Path   string `envconfig:"STORAGE_PATH" default:"./data"`
}

// DesktopConfig holds simulated desktop settings.
type DesktopConfig struct {
	ViewportWidth    int           `envconfig:"DESKTOP_VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight   int           `envconfig:"DESKTOP_VIEWPORT_HEIGHT" default:"1080"`
	BootDuration     time.Duration `envconfig:"BOOT_DURATION" default:"2300ms"`
	ShutdownDuration time.Duration `envconfig:"SHUTDOWN_DURATION" default:"3s"`
	MaxDesktops      int           `envconfig:"MAX_DESKTOPS" default:"1000"`
}

// CatalogConfig points at optional content overrides.
type CatalogConfig struct {
	Dir         string `envconfig:"CATALOG_DIR"`
	ContentFile string `envconfig:"CONTENT_FILE"`
	ResumeFile  string `envconfig:"RESUME_FILE"`
}

// ContactConfig configures the mail relay.
type ContactConfig struct {
	RelayURL string        `envconfig:"CONTACT_RELAY_URL"`
	Timeout  time.Duration `envconfig:"CONTACT_TIMEOUT" default:"10s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "file":
	default:
		return fmt.Errorf("invalid config: STORAGE_DRIVER must be memory or file, got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "file" && c.Storage.Path == "" {
		return fmt.Errorf("invalid config: STORAGE_PATH is required for the file driver")
	}
	if c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0 {
		return fmt.Errorf("invalid config: viewport must be positive")
	}
	if c.Desktop.MaxDesktops <= 0 {
		return fmt.Errorf("invalid config: MAX_DESKTOPS must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "./data",
		},
		Desktop: DesktopConfig{
			ViewportWidth:    1920,
			ViewportHeight:   1080,
			BootDuration:     2300 * time.Millisecond,
			ShutdownDuration: 3 * time.Second,
			MaxDesktops:      1000,
		},
		Contact: ContactConfig{
			Timeout: 10 * time.Second,
		},
	}
}
