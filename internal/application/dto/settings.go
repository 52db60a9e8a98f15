package dto

import (
	"taskreminder/internal/domain/constant"
	"time"
)

// Bounds offered by the settings form. The scheduler itself only requires > 0.
const (
	MinThresholdMinutes = 1
	MaxThresholdMinutes = 1440
)

// ReminderSettingsResponse describes the scheduler configuration.
type ReminderSettingsResponse struct {
	ThresholdMinutes    int                    `json:"threshold_minutes"`
	PollIntervalSeconds int                    `json:"poll_interval_seconds"`
	OverduePolicy       constant.OverduePolicy `json:"overdue_policy"`
	Running             bool                   `json:"running"`
}

// UpdateReminderSettingsRequest is the DTO for changing the reminder threshold.
type UpdateReminderSettingsRequest struct {
	ThresholdMinutes int `json:"threshold_minutes"`
}

// ReminderBatchResponse is one delivered batch of reminders.
type ReminderBatchResponse struct {
	ID         string    `json:"id"`
	Messages   []string  `json:"messages"`
	ReceivedAt time.Time `json:"received_at"`
}

// ReminderFeedResponse lists the most recent batches, newest first.
type ReminderFeedResponse struct {
	Batches       []ReminderBatchResponse `json:"batches"`
	StatusChanges int64                   `json:"status_changes"`
}
