package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Info("poll pass finished")
	log.Warn("store slow")
	log.Error("store read failed", errors.New("disk full"))
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "INFO: poll pass finished")
	assert.Contains(t, out, "⚠️ WARN: store slow")
	assert.Contains(t, out, "🔴 ERROR: store read failed - disk full")
	assert.NotContains(t, out, "hidden")
}

func TestLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, true).Debug("tracker swept 3 records")
	assert.Contains(t, buf.String(), "DEBUG: tracker swept 3 records")
}
