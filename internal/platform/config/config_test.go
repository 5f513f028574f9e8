package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir a un directorio vacío para que no aparezca un .env o config.yaml ajeno.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORS.AllowOrigins)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "大濠パーククリニック", cfg.Clinic.Name)
	assert.EqualValues(t, 200, cfg.RateLimit.Capacity)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "clinic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
log:
  format: json
clinic:
  name: 本町クリニック
catalog:
  seed_file: catalog.yaml
`), 0o600))

	t.Setenv("CLINIC_SERVER_PORT", "9191")
	t.Setenv("CLINIC_DB_DSN", "postgres://localhost/clinic")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "本町クリニック", cfg.Clinic.Name)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.SeedFile)
	assert.Equal(t, "postgres://localhost/clinic", cfg.DB.DSN)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLINIC_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CLINIC_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			Log:       LogConfig{Level: "info", Format: "text"},
			RateLimit: RateLimitConfig{Rate: 1, Capacity: 10},
			Clinic:    ClinicConfig{Name: "x"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"format", func(c *Config) { c.Log.Format = "xml" }},
		{"rate", func(c *Config) { c.RateLimit.Rate = 0 }},
		{"redis ttl", func(c *Config) { c.Redis.Addr = "localhost:6379" }},
		{"clinic", func(c *Config) { c.Clinic.Name = " " }},
	}

	ok := valid()
	require.NoError(t, ok.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
