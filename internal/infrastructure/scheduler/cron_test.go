package scheduler

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskreminder/internal/pkg/logger"
)

func TestEverySpec(t *testing.T) {
	assert.Equal(t, "@every 1m0s", EverySpec(time.Minute))
	assert.Equal(t, "@every 15s", EverySpec(15*time.Second))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(logger.Nop())
	var runs atomic.Int32

	_, err := s.AddJob(EverySpec(time.Second), func() { runs.Add(1) })
	require.NoError(t, err)

	s.Stop() // stopping a stopped scheduler is harmless
	assert.False(t, s.Running())

	s.Start()
	s.Start()
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())
	after := runs.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no job runs after Stop returns")
}

func TestScheduler_AddJobRejectsBadSpec(t *testing.T) {
	s := NewScheduler(logger.Nop())
	_, err := s.AddJob("not a spec", func() {})
	assert.Error(t, err)
}

func TestCronLogger_SkipIsWarning(t *testing.T) {
	var buf bytes.Buffer
	cl := cronLogger{log: logger.NewWithWriter(&buf, true)}

	cl.Info("skip")
	cl.Info("wake", "now", "t0")

	assert.Contains(t, buf.String(), "WARN: Previous job still running")
	assert.Contains(t, buf.String(), "DEBUG: cron: wake now=t0")
}
