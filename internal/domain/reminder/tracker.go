package reminder

import (
	"sort"
	"time"

	"taskreminder/internal/domain/constant"
)

// Record is the suppression state kept for one task.
type Record struct {
	// Deadline is the deadline the fired kinds were computed against.
	Deadline   time.Time
	FiredKinds map[constant.Classification]struct{}
}

// Tracker remembers which reminder kinds were already announced per task.
//
// A Tracker is owned by a single poll loop and is not safe for concurrent use.
// Nothing is persisted: a new process starts with an empty tracker.
type Tracker struct {
	records map[uint]*Record
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{records: make(map[uint]*Record)}
}

// Observe ties the task's record to its current deadline. When the deadline
// changed since the kinds were fired, the record is cleared so the new deadline
// gets its own reminders. It reports whether a reset happened.
func (t *Tracker) Observe(taskID uint, deadline time.Time) bool {
	rec, ok := t.records[taskID]
	if !ok {
		t.records[taskID] = &Record{Deadline: deadline, FiredKinds: make(map[constant.Classification]struct{})}
		return false
	}
	if rec.Deadline.Equal(deadline) {
		return false
	}
	t.records[taskID] = &Record{Deadline: deadline, FiredKinds: make(map[constant.Classification]struct{})}
	return true
}

// ShouldFire reports whether kind is new for the task and, if so, records it.
func (t *Tracker) ShouldFire(taskID uint, kind constant.Classification) bool {
	rec, ok := t.records[taskID]
	if !ok {
		rec = &Record{FiredKinds: make(map[constant.Classification]struct{})}
		t.records[taskID] = rec
	}
	if _, fired := rec.FiredKinds[kind]; fired {
		return false
	}
	rec.FiredKinds[kind] = struct{}{}
	return true
}

// Reset forgets everything fired for the task.
func (t *Tracker) Reset(taskID uint) {
	delete(t.records, taskID)
}

// Sweep drops the records of tasks that are not in present and returns how many were removed.
func (t *Tracker) Sweep(present map[uint]struct{}) int {
	removed := 0
	for id := range t.records {
		if _, ok := present[id]; !ok {
			delete(t.records, id)
			removed++
		}
	}
	return removed
}

// Fired returns the kinds already announced for the task, sorted.
func (t *Tracker) Fired(taskID uint) []constant.Classification {
	rec, ok := t.records[taskID]
	if !ok {
		return nil
	}
	kinds := make([]constant.Classification, 0, len(rec.FiredKinds))
	for k := range rec.FiredKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Has reports whether a record exists for the task.
func (t *Tracker) Has(taskID uint) bool {
	_, ok := t.records[taskID]
	return ok
}

// Len returns the number of tracked tasks.
func (t *Tracker) Len() int {
	return len(t.records)
}
