package scheduler

import (
	"fmt"
	"strings"

	"taskreminder/internal/pkg/logger"
)

// cronLogger routes the cron runtime's logging into the application logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// "skip" comes from SkipIfStillRunning: a pass outlived its interval.
	if msg == "skip" {
		l.log.Warn("Previous job still running, skipping this tick")
		return
	}
	l.log.Debug(fmt.Sprintf("cron: %s%s", msg, formatKV(keysAndValues)))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(fmt.Sprintf("cron: %s%s", msg, formatKV(keysAndValues)), err)
}

func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
