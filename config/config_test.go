package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:fabtrack.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ENQUIRY_PREFIX", "VE/KA")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "VE/KA", cfg.Enquiry.Prefix)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Enquiry.MaxAttempts)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Mode: "release"},
			Database: DatabaseConfig{Driver: "postgres", DSN: "host=localhost"},
			JWT:      JWTConfig{Secret: "s3cret"},
			Enquiry:  EnquiryConfig{Prefix: "VE/TN", MaxAttempts: 5},
			Storage:  StorageConfig{Driver: "local"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, false},
		{"no secret in release", func(c *Config) { c.JWT.Secret = "" }, false},
		{"no secret in dev", func(c *Config) { c.JWT.Secret = ""; c.Server.Mode = "dev" }, true},
		{"gcs without bucket", func(c *Config) { c.Storage.Driver = "gcs" }, false},
		{"minio with bucket", func(c *Config) { c.Storage.Driver = "minio"; c.Storage.Bucket = "drawings" }, true},
		{"zero attempts", func(c *Config) { c.Enquiry.MaxAttempts = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
