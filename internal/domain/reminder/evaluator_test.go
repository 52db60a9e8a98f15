package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskreminder/internal/domain/constant"
	"taskreminder/internal/domain/entity"
)

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestRemainingMinutes(t *testing.T) {
	cases := []struct {
		name     string
		offset   time.Duration
		expected int64
	}{
		{"exactly thirty minutes", 30 * time.Minute, 30},
		{"thirty minutes minus a second", 30*time.Minute - time.Second, 29},
		{"fifty nine seconds", 59 * time.Second, 0},
		{"exactly now", 0, 0},
		{"half a second late", -500 * time.Millisecond, -1},
		{"thirty seconds late", -30 * time.Second, -1},
		{"exactly one minute late", -time.Minute, -1},
		{"sixty one seconds late", -61 * time.Second, -2},
		{"five minutes late", -5 * time.Minute, -5},
		{"a day ahead", 24 * time.Hour, 1440},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RemainingMinutes(base.Add(tc.offset), base))
		})
	}
}

func TestRemainingMinutes_MatchesFloorOfSeconds(t *testing.T) {
	for secs := int64(-600); secs <= 600; secs += 7 {
		deadline := base.Add(time.Duration(secs) * time.Second)
		want := secs / 60
		if secs%60 != 0 && secs < 0 {
			want--
		}
		assert.Equal(t, want, RemainingMinutes(deadline, base), "secs=%d", secs)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		task      entity.Task
		threshold int
		expected  constant.Classification
	}{
		{"completed wins over overdue", entity.Task{IsCompleted: true, Deadline: base.Add(-time.Hour)}, 30, constant.Completed},
		{"completed wins over due now", entity.Task{IsCompleted: true, Deadline: base}, 30, constant.Completed},
		{"overdue", entity.Task{Deadline: base.Add(-5 * time.Minute)}, 30, constant.Overdue},
		{"thirty seconds late is overdue", entity.Task{Deadline: base.Add(-30 * time.Second)}, 30, constant.Overdue},
		{"at threshold", entity.Task{Deadline: base.Add(30 * time.Minute)}, 30, constant.DueAtThreshold},
		{"at threshold with spare seconds", entity.Task{Deadline: base.Add(30*time.Minute + 45*time.Second)}, 30, constant.DueAtThreshold},
		{"inside threshold is pending", entity.Task{Deadline: base.Add(29 * time.Minute)}, 30, constant.Pending},
		{"due now", entity.Task{Deadline: base.Add(40 * time.Second)}, 30, constant.DueNow},
		{"far away", entity.Task{Deadline: base.Add(3 * time.Hour)}, 30, constant.Pending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := Classify(&tc.task, base, tc.threshold)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatMessage(t *testing.T) {
	task := &entity.Task{Title: "Write report"}

	assert.Equal(t, `[Overdue] Task "Write report" is overdue by 5 minutes!`, FormatMessage(task, constant.Overdue, -5))
	assert.Equal(t, `[Due soon] Task "Write report" is due in 30 minutes!`, FormatMessage(task, constant.DueAtThreshold, 30))
	assert.Equal(t, `[Due now] Task "Write report" is due now!`, FormatMessage(task, constant.DueNow, 0))
	assert.Empty(t, FormatMessage(task, constant.Pending, 12))
}
