// Package notifier delivers scheduler output to consumers without ever
// blocking the scheduler.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"taskreminder/internal/pkg/logger"

	"github.com/google/uuid"
)

// EventType distinguishes the two outbound signals.
type EventType int

const (
	// EventReminderBatch carries the reminders produced by one poll pass.
	EventReminderBatch EventType = iota
	// EventTaskStatusChanged is a no-payload pulse telling displays to refresh.
	EventTaskStatusChanged
)

func (t EventType) String() string {
	switch t {
	case EventReminderBatch:
		return "reminder_batch"
	case EventTaskStatusChanged:
		return "task_status_changed"
	}
	return "unknown"
}

// Event is one delivered signal.
type Event struct {
	ID       uuid.UUID
	Type     EventType
	Messages []string
	At       time.Time
}

// Queue fans events out to subscriptions. Publishing appends to every
// subscription's unbounded buffer and returns immediately.
type Queue struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	now    func() time.Time
	log    logger.Logger
}

// NewQueue creates an empty queue.
func NewQueue(log logger.Logger) *Queue {
	return &Queue{
		subs: make(map[*Subscription]struct{}),
		now:  time.Now,
		log:  log,
	}
}

// ReminderBatch publishes one batch of reminder messages.
func (q *Queue) ReminderBatch(messages []string) {
	msgs := make([]string, len(messages))
	copy(msgs, messages)
	q.publish(Event{Type: EventReminderBatch, Messages: msgs})
}

// TaskStatusChanged publishes the refresh pulse.
func (q *Queue) TaskStatusChanged() {
	q.publish(Event{Type: EventTaskStatusChanged})
}

func (q *Queue) publish(ev Event) {
	ev.ID = uuid.New()
	ev.At = q.now()

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.log.Warn(fmt.Sprintf("Dropping %s event %s: queue closed", ev.Type, ev.ID))
		return
	}
	for sub := range q.subs {
		sub.push(ev)
	}
	q.log.Debug(fmt.Sprintf("Queued %s event %s for %d subscribers", ev.Type, ev.ID, len(q.subs)))
}

// Subscribe registers a new consumer. Only events published after the call are delivered.
// The returned subscription must be drained or unsubscribed.
func (q *Queue) Subscribe(name string) *Subscription {
	sub := &Subscription{
		name:  name,
		queue: q,
		wake:  make(chan struct{}, 1),
		out:   make(chan Event),
		done:  make(chan struct{}),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		sub.stop()
		close(sub.out)
		q.log.Warn(fmt.Sprintf("Subscriber %q attached to a closed notification queue.", name))
		return sub
	}
	q.subs[sub] = struct{}{}
	q.mu.Unlock()

	go sub.pump()
	q.log.Info(fmt.Sprintf("Subscriber %q attached to notification queue.", name))
	return sub
}

// Close detaches every subscriber. Pending events that were not yet received are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	subs := q.subs
	q.subs = make(map[*Subscription]struct{})
	q.mu.Unlock()

	for sub := range subs {
		sub.stop()
	}
	q.log.Info("Notification queue closed.")
}

// Subscription is one consumer's ordered view of the queue.
type Subscription struct {
	name  string
	queue *Queue

	mu      sync.Mutex
	pending []Event
	wake    chan struct{}
	out     chan Event

	stopOnce sync.Once
	done     chan struct{}
}

// C returns the delivery channel. It is closed after Unsubscribe or Queue.Close.
func (s *Subscription) C() <-chan Event {
	return s.out
}

// Name returns the subscriber name given to Subscribe.
func (s *Subscription) Name() string {
	return s.name
}

// Pending returns the number of buffered, undelivered events.
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Unsubscribe detaches the subscription. Safe to call more than once and from
// the goroutine that reads C.
func (s *Subscription) Unsubscribe() {
	s.queue.mu.Lock()
	_, attached := s.queue.subs[s]
	delete(s.queue.subs, s)
	s.queue.mu.Unlock()
	s.stop()
	if attached {
		s.queue.log.Info(fmt.Sprintf("Subscriber %q detached with %d undelivered events.", s.Name(), s.Pending()))
	}
}

func (s *Subscription) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Subscription) push(ev Event) {
	s.mu.Lock()
	s.pending = append(s.pending, ev)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) next() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return Event{}, false
	}
	ev := s.pending[0]
	s.pending[0] = Event{}
	s.pending = s.pending[1:]
	return ev, true
}

func (s *Subscription) pump() {
	defer close(s.out)
	for {
		ev, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		select {
		case s.out <- ev:
		case <-s.done:
			return
		}
	}
}
