package scheduler

import (
	"fmt"
	"sync"
	"taskreminder/internal/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron jobs.
// Every job is wrapped so that a run never overlaps the previous run of the same job.
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex // To protect access to job management
	running bool
}

// NewScheduler creates a stopped cron scheduler with seconds precision.
func NewScheduler(log logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return &Scheduler{
		cron: c,
		log:  log,
	}
}

// EverySpec returns the cron spec that fires every interval.
func EverySpec(interval time.Duration) string {
	return fmt.Sprintf("@every %s", interval)
}

// AddJob adds a new job to the scheduler.
// spec follows the cron format (e.g., "0 30 * * * *") or a descriptor such as "@every 1m".
// cmd is the function to execute.
// Returns the EntryID of the added job and an error if any.
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("Failed to add cron job", err)
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Info(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Start begins firing jobs. Starting a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info("Cron scheduler started.")
}

// Stop stops the cron scheduler and waits for running jobs to complete.
// No job starts after Stop returns. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done() // Wait for running jobs to complete
	s.running = false
	s.log.Info("Cron scheduler stopped.")
}

// Running reports whether the scheduler is firing jobs.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}
