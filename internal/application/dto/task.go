package dto

import (
	"fmt"
	"strings"
	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/reminder"
	appErrors "taskreminder/internal/pkg/errors"
	"time"
)

// DeadlineLayouts are the accepted deadline formats, tried in order.
// Layouts without a zone are read in the server's local time.
var DeadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDeadline parses a user-supplied deadline.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DeadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", appErrors.ErrInvalidDateTime, s)
}

// TaskResponse is the DTO for sending task information to the client.
type TaskResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Priority         int       `json:"priority"`
	Deadline         time.Time `json:"deadline"`
	IsCompleted      bool      `json:"is_completed"`
	Description      string    `json:"description,omitempty"`
	RemainingMinutes int64     `json:"remaining_minutes"`
	CreatedAt        time.Time `json:"create_time"`
	UpdatedAt        time.Time `json:"update_time"`
}

// ToTaskResponse converts an entity.Task to a TaskResponse DTO.
func ToTaskResponse(t *entity.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Category:         t.Category,
		Priority:         t.Priority,
		Deadline:         t.Deadline,
		IsCompleted:      t.IsCompleted,
		Description:      t.Description,
		RemainingMinutes: reminder.RemainingMinutes(t.Deadline, now),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ToTaskResponseList converts a slice of entity.Task to a slice of TaskResponse DTOs.
func ToTaskResponseList(tasks []*entity.Task, now time.Time) []TaskResponse {
	list := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		list[i] = ToTaskResponse(t, now)
	}
	return list
}

// CreateTaskRequest is the DTO for creating a new task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the DTO for a partial task update.
// nil pointer => "no change"
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// List orderings.
const (
	SortByDeadline = "deadline"
	SortByPriority = "priority" // 1 first, ties by deadline
)

// ListTasksRequest filters a task listing.
type ListTasksRequest struct {
	Category string
	OpenOnly bool
	SortBy   string
}

// CategoryStatsResponse holds the counts of one category.
type CategoryStatsResponse struct {
	Category   string `json:"category"`
	Total      int64  `json:"total"`
	Unfinished int64  `json:"unfinished"`
}

// TaskStatsResponse summarizes the task store for status displays.
type TaskStatsResponse struct {
	Total          int64                   `json:"total"`
	Unfinished     int64                   `json:"unfinished"`
	CompletionRate float64                 `json:"completion_rate"` // 0 when there are no tasks
	Categories     []CategoryStatsResponse `json:"categories"`
}
