package sqlite

import (
	"context"
	"errors"
	"fmt"
	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/repository"

	"gorm.io/gorm"
)

const taskOrder = "deadline asc, id asc"

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task by its ID.
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find task by id %d: %w", id, err)
	}
	return &task, nil
}

// FindByCategory retrieves all tasks of a category.
func (r *taskRepository) FindByCategory(ctx context.Context, category string) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks by category %s: %w", category, err)
	}
	return tasks, nil
}

// FindAll retrieves every task, completed ones included (used by the poll scheduler).
func (r *taskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find all tasks: %w", err)
	}
	return tasks, nil
}

// FindOpen retrieves tasks that are not completed.
func (r *taskRepository) FindOpen(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Where("is_completed = ?", false).Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find open tasks: %w", err)
	}
	return tasks, nil
}

// CountByCategory returns total and unfinished counts per category.
func (r *taskRepository) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	var counts []repository.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Select("category, COUNT(*) AS total, SUM(CASE WHEN is_completed THEN 0 ELSE 1 END) AS unfinished").
		Group("category").
		Order("category asc").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by category: %w", err)
	}
	return counts, nil
}

// Create creates a new task. Returns the ID of the created task.
func (r *taskRepository) Create(ctx context.Context, task *entity.Task) (uint, error) {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return 0, fmt.Errorf("failed to create task %q: %w", task.Title, err)
	}
	return task.ID, nil
}

// Update updates an existing task.
func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	// Use Save to update all fields, including zero values
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

// Delete deletes a task by its ID. Deleting a missing task returns gorm.ErrRecordNotFound.
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task with ID %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
