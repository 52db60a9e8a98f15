// Package reminder holds the pure deadline classification and the per-task
// memory of which reminders were already announced.
package reminder

import (
	"fmt"
	"time"

	"taskreminder/internal/domain/constant"
	"taskreminder/internal/domain/entity"
)

// RemainingMinutes returns the whole minutes left until deadline, measured from now.
// Both the seconds and the minutes are floored, so past deadlines round toward
// negative infinity: 30 seconds late is -1, never 0.
func RemainingMinutes(deadline, now time.Time) int64 {
	seconds := floorDiv(int64(deadline.Sub(now)), int64(time.Second))
	return floorDiv(seconds, 60)
}

// Classify places a task into exactly one classification.
// The threshold and due-now checks are equality checks on the minute boundary, so a
// poller that observes every minute sees each of them once per deadline.
func Classify(task *entity.Task, now time.Time, thresholdMinutes int) (constant.Classification, int64) {
	if task.IsCompleted {
		return constant.Completed, 0
	}
	remaining := RemainingMinutes(task.Deadline, now)
	switch {
	case remaining < 0:
		return constant.Overdue, remaining
	case remaining == int64(thresholdMinutes):
		return constant.DueAtThreshold, remaining
	case remaining == 0:
		return constant.DueNow, remaining
	default:
		return constant.Pending, remaining
	}
}

// FormatMessage renders the reminder text shown to the user.
func FormatMessage(task *entity.Task, c constant.Classification, remaining int64) string {
	switch c {
	case constant.Overdue:
		return fmt.Sprintf("[Overdue] Task %q is overdue by %d minutes!", task.Title, -remaining)
	case constant.DueAtThreshold:
		return fmt.Sprintf("[Due soon] Task %q is due in %d minutes!", task.Title, remaining)
	case constant.DueNow:
		return fmt.Sprintf("[Due now] Task %q is due now!", task.Title)
	}
	return ""
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
