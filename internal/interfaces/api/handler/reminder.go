package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"taskreminder/internal/application/dto"
	"taskreminder/internal/infrastructure/notifier"
	"taskreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReminderFeed keeps the most recent reminder batches for the HTTP API.
type ReminderFeed struct {
	mu      sync.Mutex
	size    int
	batches []dto.ReminderBatchResponse // ring buffer, oldest at head
	head    int
	pulses  atomic.Int64
}

// NewReminderFeed creates a feed retaining at most size batches.
func NewReminderFeed(size int) *ReminderFeed {
	if size < 1 {
		size = 1
	}
	return &ReminderFeed{size: size}
}

// Run consumes sub until ctx is done or the subscription is closed.
func (f *ReminderFeed) Run(ctx context.Context, sub *notifier.Subscription) {
	for {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			f.Record(ev)
		}
	}
}

// Record stores one event.
func (f *ReminderFeed) Record(ev notifier.Event) {
	switch ev.Type {
	case notifier.EventTaskStatusChanged:
		f.pulses.Add(1)
	case notifier.EventReminderBatch:
		batch := dto.ReminderBatchResponse{
			ID:         ev.ID.String(),
			Messages:   ev.Messages,
			ReceivedAt: ev.At,
		}
		f.mu.Lock()
		if len(f.batches) < f.size {
			f.batches = append(f.batches, batch)
		} else {
			f.batches[f.head] = batch
			f.head = (f.head + 1) % f.size
		}
		f.mu.Unlock()
	}
}

// Recent returns up to limit batches, newest first. limit <= 0 means all retained.
func (f *ReminderFeed) Recent(limit int) dto.ReminderFeedResponse {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.batches)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]dto.ReminderBatchResponse, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (f.head + n - 1 - i) % n
		out = append(out, f.batches[idx])
	}
	return dto.ReminderFeedResponse{
		Batches:       out,
		StatusChanges: f.pulses.Load(),
	}
}

// ReminderHandler serves the delivered reminder feed.
type ReminderHandler struct {
	feed *ReminderFeed
	log  logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(feed *ReminderFeed, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{feed: feed, log: log}
}

// ListReminders handles GET /reminders?limit=.
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid limit %q", raw)})
		}
		limit = n
	}
	return c.JSON(http.StatusOK, h.feed.Recent(limit))
}
