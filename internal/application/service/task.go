package service

import (
	"context"
	"taskreminder/internal/application/dto"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	// CreateTask validates and stores a new task.
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id uint) (*dto.TaskResponse, error)
	// ListTasks lists tasks, optionally by category or only open ones, by deadline or priority.
	ListTasks(ctx context.Context, req dto.ListTasksRequest) ([]dto.TaskResponse, error)
	// UpdateTask applies a partial update.
	UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	// SetCompleted marks a task completed or reopens it.
	SetCompleted(ctx context.Context, id uint, completed bool) (*dto.TaskResponse, error)
	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id uint) error
	// Stats returns total, unfinished and per-category counts.
	Stats(ctx context.Context) (*dto.TaskStatsResponse, error)
}
