package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "rooms"

[booking]
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 15, cfg.Booking.ReleaseThresholdMinutes)
	assert.Equal(t, 30, cfg.Booking.CheckInLeadMinutes)
	assert.Equal(t, 52, cfg.Booking.MaxSeriesOccurrences)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_OverridesThreshold(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "rooms"

[booking]
release_threshold_minutes = 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Booking.ReleaseThresholdMinutes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "нулевой порог освобождения",
			content: `
[database]
host = "db"
dbname = "rooms"
[booking]
release_threshold_minutes = 0
`,
		},
		{
			name: "неизвестный часовой пояс",
			content: `
[database]
host = "db"
dbname = "rooms"
[booking]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "нет имени базы",
			content: `
[database]
host = "db"
dbname = ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "rooms", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rooms sslmode=disable", d.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabasePassword, "secret")
	t.Setenv(EnvRedisAddr, "redis:6379")

	path := writeConfig(t, `
[database]
host = "db"
dbname = "rooms"
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "db", cfg.Database.Host)
}

func TestLoad_EnvFileNextToConfig(t *testing.T) {
	// t.Setenv восстановит окружение после теста, Unsetenv дает .env записать значение
	t.Setenv(EnvRedisPassword, "")
	require.NoError(t, os.Unsetenv(EnvRedisPassword))

	path := writeConfig(t, `
[database]
host = "db"
dbname = "rooms"
`)
	envPath := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(EnvRedisPassword+"=from-env-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.Redis.Password)
}
