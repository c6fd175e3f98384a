package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "carwash"
password = "from-file"
dbname = "carwash"

[auth]
session_secret = "0123456789abcdef0123456789abcdef"

[cors]
allowed_origins = ["http://localhost:3000"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "carwash_session", cfg.Auth.CookieName)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxImageBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARWASH_DB_PASSWORD", "from-env")
	t.Setenv("CARWASH_GOOGLE_CLIENT_ID", "client-123.apps.googleusercontent.com")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "client-123.apps.googleusercontent.com", cfg.Google.ClientID)
	assert.Equal(t, "carwash", cfg.Database.User)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.Host = "localhost"
		cfg.Database.DBName = "carwash"
		cfg.Auth.SessionSecret = strings.Repeat("s", minSessionSecretLen)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no db host", func(c *Config) { c.Database.Host = "" }},
		{"no db name", func(c *Config) { c.Database.DBName = "" }},
		{"short secret", func(c *Config) { c.Auth.SessionSecret = "short" }},
		{"zero port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"zero timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"negative retention", func(c *Config) { c.Jobs.ActivityRetentionDays = -1 }},
		{"bad trusted proxy", func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/8", "proxy.local"} }},
	}

	assert.NoError(t, valid().Validate())

	withProxies := valid()
	withProxies.Server.TrustedProxies = []string{"10.0.0.0/8", "127.0.0.1", "::1"}
	assert.NoError(t, withProxies.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDatabaseConfig_URLs(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p@ss", DBName: "cw", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5433 user=u password=p@ss dbname=cw sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://u:p%40ss@db:5433/cw?sslmode=disable", db.MigrateURL())
}
