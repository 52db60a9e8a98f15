package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskreminder/internal/domain/constant"
	appErrors "taskreminder/internal/pkg/errors"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBURL, cfg.DBURL)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 30, cfg.ThresholdMinutes)
	assert.Equal(t, constant.OverdueRepeat, cfg.OverduePolicy)
	assert.Equal(t, "warn", cfg.DBLogLevel)
	assert.False(t, cfg.LineEnabled())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                       "9090",
		"TASKS_DB_URL":               "/tmp/x.db",
		"POLL_INTERVAL_SECONDS":      "15",
		"REMINDER_THRESHOLD_MINUTES": "45",
		"OVERDUE_POLICY":             "once",
		"CHANNEL_SECRET":             "s",
		"CHANNEL_ACCESS_TOKEN":       "t",
		"LINE_NOTIFY_TO":             "U123",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBURL)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
	assert.Equal(t, 45, cfg.ThresholdMinutes)
	assert.Equal(t, constant.OverdueOnce, cfg.OverduePolicy)
	assert.True(t, cfg.LineEnabled())
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"interval too long":  {"POLL_INTERVAL_SECONDS": "61"},
		"interval zero":      {"POLL_INTERVAL_SECONDS": "0"},
		"threshold negative": {"REMINDER_THRESHOLD_MINUTES": "-5"},
		"port not a number":  {"PORT": "http"},
		"bad policy":         {"OVERDUE_POLICY": "sometimes"},
		"bad db log level":   {"DB_LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(envMap(env))
			assert.ErrorIs(t, err, appErrors.ErrInvalidConfig)
		})
	}
}
