package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"taskreminder/internal/domain/constant"
	appErrors "taskreminder/internal/pkg/errors"
)

const (
	DefaultPort             = 8080
	DefaultDBURL            = "tasks.db"
	DefaultPollInterval     = 60 * time.Second
	DefaultThresholdMinutes = 30
	DefaultFeedSize         = 50

	// MaxPollInterval keeps every minute boundary observable by at least one pass.
	MaxPollInterval = 60 * time.Second
)

// Config is the process configuration read from the environment.
type Config struct {
	Port             int
	DBURL            string
	DBLogLevel       string
	PollInterval     time.Duration
	ThresholdMinutes int
	OverduePolicy    constant.OverduePolicy
	FeedSize         int

	// LINE push notifications; disabled unless all three are set.
	ChannelSecret      string
	ChannelAccessToken string
	LineNotifyTo       string
}

// LineEnabled reports whether reminder batches should be pushed to LINE.
func (c *Config) LineEnabled() bool {
	return c.ChannelSecret != "" && c.ChannelAccessToken != "" && c.LineNotifyTo != ""
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv, which makes it testable.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBURL:              valueOrDefault(getenv("TASKS_DB_URL"), DefaultDBURL),
		DBLogLevel:         strings.ToLower(valueOrDefault(getenv("DB_LOG_LEVEL"), "warn")),
		ChannelSecret:      getenv("CHANNEL_SECRET"),
		ChannelAccessToken: getenv("CHANNEL_ACCESS_TOKEN"),
		LineNotifyTo:       getenv("LINE_NOTIFY_TO"),
	}

	var err error
	if cfg.Port, err = intEnv(getenv, "PORT", DefaultPort); err != nil {
		return nil, err
	}

	seconds, err := intEnv(getenv, "POLL_INTERVAL_SECONDS", int(DefaultPollInterval/time.Second))
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = time.Duration(seconds) * time.Second
	if cfg.PollInterval <= 0 || cfg.PollInterval > MaxPollInterval {
		return nil, fmt.Errorf("%w: POLL_INTERVAL_SECONDS must be between 1 and %d, got %d",
			appErrors.ErrInvalidConfig, int(MaxPollInterval/time.Second), seconds)
	}

	if cfg.ThresholdMinutes, err = intEnv(getenv, "REMINDER_THRESHOLD_MINUTES", DefaultThresholdMinutes); err != nil {
		return nil, err
	}
	if cfg.ThresholdMinutes <= 0 {
		return nil, fmt.Errorf("%w: REMINDER_THRESHOLD_MINUTES must be positive, got %d",
			appErrors.ErrInvalidConfig, cfg.ThresholdMinutes)
	}

	if cfg.OverduePolicy, err = constant.ParseOverduePolicy(getenv("OVERDUE_POLICY")); err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInvalidConfig, err)
	}

	if cfg.FeedSize, err = intEnv(getenv, "REMINDER_FEED_SIZE", DefaultFeedSize); err != nil {
		return nil, err
	}
	if cfg.FeedSize <= 0 {
		return nil, fmt.Errorf("%w: REMINDER_FEED_SIZE must be positive", appErrors.ErrInvalidConfig)
	}

	switch cfg.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return nil, fmt.Errorf("%w: unknown DB_LOG_LEVEL %q", appErrors.ErrInvalidConfig, cfg.DBLogLevel)
	}

	return cfg, nil
}

func intEnv(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", appErrors.ErrInvalidConfig, key, raw)
	}
	return v, nil
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
