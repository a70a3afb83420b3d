package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env file is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, "./datos.json", cfg.Store.Path)
	assert.False(t, cfg.Store.StrictWrites)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, BackupNone, cfg.Backup.Target)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_PATH", "/tmp/fleet.db")
	t.Setenv("STORE_STRICT_WRITES", "true")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("MQTT_PUBLISH_TIMEOUT_MS", "500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/fleet.db", cfg.Store.Path)
	assert.True(t, cfg.Store.StrictWrites)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 50, cfg.RateLimit.Requests)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, 500, cfg.MQTT.TimeoutMS)
	assert.Equal(t, 256, cfg.MQTT.QueueSize)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	yamlDoc := `
server:
  port: 4000
store:
  driver: postgres
  dsn: postgres://fleet@localhost/fleet?sslmode=disable
backup:
  target: dir
  dir: /var/backups/fleet
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://fleet@localhost/fleet?sslmode=disable", cfg.Store.DSN)
	assert.Equal(t, BackupDir, cfg.Backup.Target)
	assert.Equal(t, "/var/backups/fleet", cfg.Backup.Dir)
	assert.Equal(t, "0 0 3 * * *", cfg.Backup.Schedule)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"memory driver", func(c *Config) { c.Store.Driver = DriverMemory }, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, true},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, true},
		{"s3 without bucket", func(c *Config) { c.Store.Driver = DriverS3 }, true},
		{"s3 with bucket", func(c *Config) { c.Store.Driver = DriverS3; c.Store.S3.Bucket = "fleet" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative rate limit", func(c *Config) { c.RateLimit.Requests = -1 }, true},
		{"rate limit without window", func(c *Config) { c.RateLimit.Requests = 5; c.RateLimit.WindowSeconds = 0 }, true},
		{"bad qos", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"unknown backup target", func(c *Config) { c.Backup.Target = "ftp" }, true},
		{"s3 backup without bucket", func(c *Config) { c.Backup.Target = BackupS3 }, true},
		{"backup without schedule", func(c *Config) { c.Backup.Target = BackupDir; c.Backup.Schedule = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
