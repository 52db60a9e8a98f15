package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"taskreminder/internal/application/dto"
	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/repository"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"
	"time"

	"gorm.io/gorm"
)

type taskService struct {
	taskRepo repository.TaskRepository
	log      logger.Logger
	now      func() time.Time
}

// NewTaskService creates a new instance of TaskService implementation.
func NewTaskService(taskRepo repository.TaskRepository, log logger.Logger) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		log:      log,
		now:      time.Now,
	}
}

// CreateTask validates and stores a new task.
func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	deadline, err := dto.ParseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}
	task := &entity.Task{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Priority:    req.Priority,
		Deadline:    deadline.UTC(),
		Description: req.Description,
	}
	if task.Category == "" {
		task.Category = entity.DefaultCategory
	}
	if task.Priority == 0 {
		task.Priority = entity.DefaultPriority
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	id, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		s.log.Error("Failed to create task", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created task %d %q due %s", id, task.Title, task.Deadline.Format(time.RFC3339)))
	resp := dto.ToTaskResponse(task, s.now())
	return &resp, nil
}

// GetTask retrieves a task by its ID.
func (s *taskService) GetTask(ctx context.Context, id uint) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTaskResponse(task, s.now())
	return &resp, nil
}

// ListTasks lists tasks.
func (s *taskService) ListTasks(ctx context.Context, req dto.ListTasksRequest) ([]dto.TaskResponse, error) {
	switch req.SortBy {
	case "", dto.SortByDeadline, dto.SortByPriority:
	default:
		return nil, fmt.Errorf("%w: unknown sort order %q", appErrors.ErrInvalidTask, req.SortBy)
	}

	var (
		tasks []*entity.Task
		err   error
	)
	switch {
	case req.Category != "":
		tasks, err = s.taskRepo.FindByCategory(ctx, req.Category)
	case req.OpenOnly:
		tasks, err = s.taskRepo.FindOpen(ctx)
	default:
		tasks, err = s.taskRepo.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to list tasks", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if req.Category != "" && req.OpenOnly {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.IsCompleted {
				open = append(open, t)
			}
		}
		tasks = open
	}
	if req.SortBy == dto.SortByPriority {
		// The store already orders by deadline; a stable sort keeps that within a priority.
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Priority < tasks[j].Priority })
	}
	return dto.ToTaskResponseList(tasks, s.now()), nil
}

// UpdateTask applies a partial update. A changed deadline starts a new reminder
// window on the scheduler's next pass.
func (s *taskService) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		task.Category = strings.TrimSpace(*req.Category)
		if task.Category == "" {
			task.Category = entity.DefaultCategory
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if req.Deadline != nil {
		deadline, err := dto.ParseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = deadline.UTC()
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	return s.save(ctx, task)
}

// SetCompleted marks a task completed or reopens it.
func (s *taskService) SetCompleted(ctx context.Context, id uint, completed bool) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted == completed {
		resp := dto.ToTaskResponse(task, s.now())
		return &resp, nil
	}
	task.IsCompleted = completed
	return s.save(ctx, task)
}

// DeleteTask removes a task.
func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrTaskNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to delete task %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted task %d", id))
	return nil
}

// Stats returns total, unfinished and per-category counts.
func (s *taskService) Stats(ctx context.Context) (*dto.TaskStatsResponse, error) {
	counts, err := s.taskRepo.CountByCategory(ctx)
	if err != nil {
		s.log.Error("Failed to count tasks", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	stats := &dto.TaskStatsResponse{Categories: make([]dto.CategoryStatsResponse, 0, len(counts))}
	for _, c := range counts {
		stats.Total += c.Total
		stats.Unfinished += c.Unfinished
		stats.Categories = append(stats.Categories, dto.CategoryStatsResponse{
			Category:   c.Category,
			Total:      c.Total,
			Unfinished: c.Unfinished,
		})
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Total-stats.Unfinished) / float64(stats.Total)
	}
	return stats, nil
}

func (s *taskService) find(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTaskNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find task %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return task, nil
}

func (s *taskService) save(ctx context.Context, task *entity.Task) (*dto.TaskResponse, error) {
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update task %d", task.ID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Debug(fmt.Sprintf("Updated task %d (completed=%t)", task.ID, task.IsCompleted))
	resp := dto.ToTaskResponse(task, s.now())
	return &resp, nil
}

func validateTask(t *entity.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title must not be empty", appErrors.ErrInvalidTask)
	}
	if t.Priority < entity.MinPriority || t.Priority > entity.MaxPriority {
		return fmt.Errorf("%w: priority must be between %d and %d, got %d",
			appErrors.ErrInvalidTask, entity.MinPriority, entity.MaxPriority, t.Priority)
	}
	if t.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", appErrors.ErrInvalidTask)
	}
	return nil
}
