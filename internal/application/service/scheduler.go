package service

import (
	"context"
	"taskreminder/internal/domain/constant"
	"taskreminder/internal/domain/entity"
	"time"
)

// TaskLister is the read access the poll scheduler needs from the task store.
type TaskLister interface {
	// FindAll returns every task; completed tasks are filtered by the scheduler.
	FindAll(ctx context.Context) ([]*entity.Task, error)
}

// NotificationSink receives the scheduler's output. Implementations must return
// without waiting for consumers.
type NotificationSink interface {
	// ReminderBatch delivers the messages of one pass, in store order.
	ReminderBatch(messages []string)
	// TaskStatusChanged tells status displays to refresh.
	TaskStatusChanged()
}

// PassResult summarizes one poll pass.
type PassResult struct {
	At        time.Time
	Threshold int
	Evaluated int
	Swept     int
	Messages  []string
}

// SchedulerService defines the interface of the deadline poll scheduler.
type SchedulerService interface {
	// Start begins polling every PollInterval. Starting a running scheduler is a no-op.
	Start() error
	// Stop ends polling and waits for the in-flight pass. No pass starts after it returns.
	Stop()
	// Running reports whether the poll loop is active.
	Running() bool
	// SetThreshold changes the reminder lead time used from the next pass on.
	// Non-positive values are rejected with ErrInvalidThreshold and the old value is kept.
	SetThreshold(minutes int) error
	// Threshold returns the reminder lead time in minutes.
	Threshold() int
	// PollInterval returns the fixed polling cadence.
	PollInterval() time.Duration
	// OverduePolicy returns how overdue tasks are announced.
	OverduePolicy() constant.OverduePolicy
	// RunPass performs one fetch-classify-notify cycle immediately.
	RunPass(ctx context.Context) (PassResult, error)
}
