package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "BOT_DEBUG", "POLL_TIMEOUT", "DATABASE_PATH", "DATA_DIR", "LOG_LEVEL", "DIGEST_SCHEDULE"} {
		// Setenv восстановит исходное значение после теста
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "./data/bot.db", cfg.DatabasePath)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0 9 * * *", cfg.DigestSchedule)
	assert.Equal(t, 60*time.Second, cfg.PollTimeout.Duration())
	assert.False(t, cfg.BotDebug)
	assert.ErrorIs(t, cfg.Validate(), ErrNoToken)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_DEBUG", "true")
	t.Setenv("POLL_TIMEOUT", "2m")
	t.Setenv("DATABASE_PATH", "/tmp/gameboard.db")
	t.Setenv("DATA_DIR", "/tmp/data")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DIGEST_SCHEDULE", "30 8 * * 1-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.True(t, cfg.BotDebug)
	assert.Equal(t, 2*time.Minute, cfg.PollTimeout.Duration())
	assert.Equal(t, "/tmp/gameboard.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "30 8 * * 1-5", cfg.DigestSchedule)
	assert.NoError(t, cfg.Validate())
}

func TestSeconds_SetValue(t *testing.T) {
	var s Seconds

	require.NoError(t, s.SetValue("45"))
	assert.Equal(t, 45*time.Second, s.Duration())

	require.NoError(t, s.SetValue("1m30s"))
	assert.Equal(t, 90*time.Second, s.Duration())

	assert.Error(t, s.SetValue("долго"))
	assert.Error(t, s.SetValue(""))
}
