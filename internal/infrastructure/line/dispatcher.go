package line

import (
	"context"
	"fmt"
	"strings"
	"taskreminder/internal/infrastructure/notifier"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LINE rejects text messages longer than this and pushes with more than five messages.
const (
	maxTextLength      = 5000
	maxMessagesPerPush = 5
)

// Pusher is the part of Client the dispatcher needs.
type Pusher interface {
	PushMessages(to string, messages ...linebot.SendingMessage) error
}

// Dispatcher forwards reminder batches from a notification subscription to one LINE recipient.
type Dispatcher struct {
	pusher Pusher
	to     string
	log    logger.Logger
}

// NewDispatcher creates a dispatcher pushing to the given user, group or room ID.
func NewDispatcher(pusher Pusher, to string, log logger.Logger) *Dispatcher {
	return &Dispatcher{pusher: pusher, to: to, log: log}
}

// Run consumes sub until ctx is done or the subscription is closed.
// Push failures are logged and the batch is dropped.
func (d *Dispatcher) Run(ctx context.Context, sub *notifier.Subscription) {
	for {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			if ev.Type != notifier.EventReminderBatch || len(ev.Messages) == 0 {
				continue
			}
			if err := d.Dispatch(ev.Messages); err != nil {
				d.log.Error(fmt.Sprintf("Failed to push reminder batch %s", ev.ID), err)
			}
		}
	}
}

// Dispatch pushes one batch, one line per reminder.
func (d *Dispatcher) Dispatch(messages []string) error {
	texts := chunkText(strings.Join(messages, "\n"), maxTextLength)
	for len(texts) > 0 {
		n := min(len(texts), maxMessagesPerPush)
		sending := make([]linebot.SendingMessage, n)
		for i, text := range texts[:n] {
			sending[i] = linebot.NewTextMessage(text)
		}
		if err := d.pusher.PushMessages(d.to, sending...); err != nil {
			return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
		}
		texts = texts[n:]
	}
	d.log.Debug(fmt.Sprintf("Pushed %d reminders to LINE.", len(messages)))
	return nil
}

// chunkText splits s into pieces of at most limit runes, preferring line breaks.
func chunkText(s string, limit int) []string {
	var chunks []string
	runes := []rune(s)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
