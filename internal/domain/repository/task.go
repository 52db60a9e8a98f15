package repository

import (
	"context"
	"taskreminder/internal/domain/entity"
)

// CategoryCount holds the task counts of one category.
type CategoryCount struct {
	Category   string
	Total      int64
	Unfinished int64
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	// FindByID retrieves a task by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)
	// FindByCategory retrieves all tasks of a category, ordered by deadline.
	FindByCategory(ctx context.Context, category string) ([]*entity.Task, error)
	// FindAll retrieves every task, completed ones included, ordered by deadline then ID.
	FindAll(ctx context.Context) ([]*entity.Task, error)
	// FindOpen retrieves tasks that are not completed, ordered by deadline then ID.
	FindOpen(ctx context.Context) ([]*entity.Task, error)
	// CountByCategory returns total and unfinished counts per category, ordered by category.
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	// Create creates a new task. Returns the ID of the created task.
	Create(ctx context.Context, task *entity.Task) (uint, error)
	// Update updates an existing task.
	Update(ctx context.Context, task *entity.Task) error
	// Delete deletes a task by its ID.
	Delete(ctx context.Context, id uint) error
}
