package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskreminder/internal/infrastructure/notifier"
)

func batch(i int) notifier.Event {
	return notifier.Event{
		ID:       uuid.New(),
		Type:     notifier.EventReminderBatch,
		Messages: []string{fmt.Sprintf("m%d", i)},
		At:       time.Unix(int64(i), 0),
	}
}

func TestReminderFeed_RingKeepsNewest(t *testing.T) {
	feed := NewReminderFeed(3)
	assert.Empty(t, feed.Recent(0).Batches)

	for i := 1; i <= 5; i++ {
		feed.Record(batch(i))
		feed.Record(notifier.Event{Type: notifier.EventTaskStatusChanged})
	}

	got := feed.Recent(0)
	assert.Equal(t, int64(5), got.StatusChanges)
	var msgs []string
	for _, b := range got.Batches {
		msgs = append(msgs, b.Messages[0])
	}
	assert.Equal(t, []string{"m5", "m4", "m3"}, msgs)

	limited := feed.Recent(2)
	assert.Len(t, limited.Batches, 2)
	assert.Equal(t, "m5", limited.Batches[0].Messages[0])
}

func TestReminderFeed_MinimumSize(t *testing.T) {
	feed := NewReminderFeed(0)
	feed.Record(batch(1))
	feed.Record(batch(2))
	got := feed.Recent(10)
	assert.Len(t, got.Batches, 1)
	assert.Equal(t, "m2", got.Batches[0].Messages[0])
}
