package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"taskreminder/internal/domain/constant"
	"taskreminder/internal/domain/reminder"
	"taskreminder/internal/infrastructure/scheduler"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// storeReadTimeout bounds the task fetch of a single pass.
	storeReadTimeout = 10 * time.Second
	// maxPollInterval keeps every minute boundary visible to at least one pass.
	maxPollInterval = 60 * time.Second
)

// SchedulerConfig configures a poll scheduler.
type SchedulerConfig struct {
	PollInterval     time.Duration
	ThresholdMinutes int
	OverduePolicy    constant.OverduePolicy
	// Now defaults to time.Now.
	Now func() time.Time
}

type schedulerService struct {
	cronScheduler *scheduler.Scheduler // The infrastructure scheduler, owned by this service
	tasks         TaskLister
	sink          NotificationSink
	log           logger.Logger

	interval  time.Duration
	policy    constant.OverduePolicy
	now       func() time.Time
	threshold atomic.Int64

	// passMu serializes passes; the tracker is only touched while it is held.
	passMu  sync.Mutex
	tracker *reminder.Tracker

	mu      sync.Mutex // Protects entryID and running
	entryID cron.EntryID
	running bool
}

// NewSchedulerService creates a stopped poll scheduler.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	tasks TaskLister,
	sink NotificationSink,
	cfg SchedulerConfig,
	log logger.Logger,
) (SchedulerService, error) {
	if cfg.PollInterval < time.Second || cfg.PollInterval > maxPollInterval {
		return nil, fmt.Errorf("%w: poll interval must be between 1s and %s, got %s",
			appErrors.ErrScheduling, maxPollInterval, cfg.PollInterval)
	}
	if cfg.ThresholdMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", appErrors.ErrInvalidThreshold, cfg.ThresholdMinutes)
	}
	policy := cfg.OverduePolicy
	if policy == "" {
		policy = constant.OverdueRepeat
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &schedulerService{
		cronScheduler: cronScheduler,
		tasks:         tasks,
		sink:          sink,
		log:           log,
		interval:      cfg.PollInterval,
		policy:        policy,
		now:           now,
		tracker:       reminder.NewTracker(),
	}
	s.threshold.Store(int64(cfg.ThresholdMinutes))
	return s, nil
}

// Start registers the poll job and starts the cron runtime.
func (s *schedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Debug("Poll scheduler already running; start ignored.")
		return nil
	}

	entryID, err := s.cronScheduler.AddJob(scheduler.EverySpec(s.interval), s.tick)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.entryID = entryID
	s.cronScheduler.Start()
	s.running = true
	s.log.Info(fmt.Sprintf("Poll scheduler started (interval %s, threshold %d min, overdue policy %s)",
		s.interval, s.Threshold(), s.policy))
	return nil
}

// Stop halts the cron runtime, waiting for an in-flight pass, and drops the poll job.
// The pass never takes s.mu, so waiting here cannot deadlock against it.
func (s *schedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cronScheduler.Stop()
	s.cronScheduler.RemoveJob(s.entryID)
	s.running = false
	s.log.Info("Poll scheduler stopped.")
}

// Running reports whether the poll loop is active.
func (s *schedulerService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetThreshold updates the reminder lead time.
func (s *schedulerService) SetThreshold(minutes int) error {
	if minutes <= 0 {
		s.log.Warn(fmt.Sprintf("Rejected reminder threshold %d; keeping %d minutes", minutes, s.Threshold()))
		return fmt.Errorf("%w: got %d", appErrors.ErrInvalidThreshold, minutes)
	}
	s.threshold.Store(int64(minutes))
	s.log.Info(fmt.Sprintf("Reminder threshold updated to %d minutes", minutes))
	return nil
}

// Threshold returns the reminder lead time in minutes.
func (s *schedulerService) Threshold() int {
	return int(s.threshold.Load())
}

func (s *schedulerService) PollInterval() time.Duration {
	return s.interval
}

func (s *schedulerService) OverduePolicy() constant.OverduePolicy {
	return s.policy
}

// tick is the cron job body.
func (s *schedulerService) tick() {
	// Errors are logged by RunPass; the next tick retries.
	_, _ = s.RunPass(context.Background())
}

// RunPass fetches all tasks, sweeps the tracker, classifies every task and
// publishes the newly due reminders as one batch.
func (s *schedulerService) RunPass(ctx context.Context) (PassResult, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	now := s.now()
	result := PassResult{At: now, Threshold: s.Threshold()}

	readCtx, cancel := context.WithTimeout(ctx, storeReadTimeout)
	tasks, err := s.tasks.FindAll(readCtx)
	cancel()
	if err != nil {
		s.log.Warn(fmt.Sprintf("Skipping poll pass, task store read failed: %v", err))
		return result, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}

	present := make(map[uint]struct{}, len(tasks))
	for _, task := range tasks {
		present[task.ID] = struct{}{}
	}
	result.Evaluated = len(tasks)
	result.Swept = s.tracker.Sweep(present)

	for _, task := range tasks {
		c, remaining := reminder.Classify(task, now, result.Threshold)
		if c == constant.Completed {
			s.tracker.Reset(task.ID)
			continue
		}
		if s.tracker.Observe(task.ID, task.Deadline) {
			s.log.Debug(fmt.Sprintf("Deadline of task %d changed; reminder state reset", task.ID))
		}
		if !s.fires(task.ID, c) {
			continue
		}
		result.Messages = append(result.Messages, reminder.FormatMessage(task, c, remaining))
		s.log.Debug(fmt.Sprintf("Task %d fired %s (%d min remaining)", task.ID, c, remaining))
	}

	if len(result.Messages) > 0 {
		s.sink.ReminderBatch(result.Messages)
		s.sink.TaskStatusChanged()
		s.log.Info(fmt.Sprintf("Poll pass published %d reminders for %d tasks", len(result.Messages), result.Evaluated))
	} else {
		s.log.Debug(fmt.Sprintf("Poll pass evaluated %d tasks, nothing due", result.Evaluated))
	}
	return result, nil
}

// fires decides whether a classification produces a message in this pass.
func (s *schedulerService) fires(taskID uint, c constant.Classification) bool {
	switch c {
	case constant.DueAtThreshold, constant.DueNow:
		return s.tracker.ShouldFire(taskID, c)
	case constant.Overdue:
		if s.policy == constant.OverdueOnce {
			return s.tracker.ShouldFire(taskID, c)
		}
		return true
	}
	return false
}
