package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  port: 8080
  mode: release
  follow_up_sweep_at: "0 9 * * *"
db:
  driver: sqlite
  dsn: ":memory:"
logger:
  log_level: INFO
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadConfig(t *testing.T) {
	config, err := loadConfig(writeConfigFile(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "release", config.Server.Mode)
	assert.Equal(t, "0 9 * * *", config.Server.FollowUpSweepAt)
	assert.Equal(t, "sqlite", config.DB.Driver)
	assert.Equal(t, ":memory:", config.DB.DSN)
	assert.Equal(t, LevelInfo, config.Logger.LogLevel)
}

func Test_LoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost user=app dbname=jobs")
	t.Setenv("LOG_LEVEL", "DEBUG")

	config, err := loadConfig(writeConfigFile(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "postgres", config.DB.Driver)
	assert.Equal(t, "host=localhost user=app dbname=jobs", config.DB.DSN)
	assert.Equal(t, LevelDebug, config.Logger.LogLevel)
}

func Test_LoadConfig_RejectsInvalidValues(t *testing.T) {
	broken := `
server:
  port: 0
  follow_up_sweep_at: "0 9 * * *"
db:
  driver: mongodb
  dsn: ""
logger:
  log_level: ""
`

	_, err := loadConfig(writeConfigFile(t, broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "unknown db driver")
	assert.Contains(t, err.Error(), "log_level")
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
