package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"taskreminder/internal/application/dto"
	"taskreminder/internal/application/service"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TaskHandler serves the task CRUD endpoints.
type TaskHandler struct {
	taskService service.TaskService
	log         logger.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, log logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks handles GET /tasks?category=&open=&sort=deadline|priority.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	req := dto.ListTasksRequest{
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort"),
	}
	if raw := c.QueryParam("open"); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid open flag %q", raw)})
		}
		req.OpenOnly = open
	}
	tasks, err := h.taskService.ListTasks(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// TaskStats handles GET /tasks/stats.
func (h *TaskHandler) TaskStats(c echo.Context) error {
	stats, err := h.taskService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /tasks/:id.
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/:id.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, task)
}

// CompleteTask handles POST /tasks/:id/complete.
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	return h.setCompleted(c, true)
}

// ReopenTask handles POST /tasks/:id/reopen.
func (h *TaskHandler) ReopenTask(c echo.Context) error {
	return h.setCompleted(c, false)
}

func (h *TaskHandler) setCompleted(c echo.Context, completed bool) error {
	id, err := taskID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	task, err := h.taskService.SetCompleted(c.Request().Context(), id, completed)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad id %q", appErrors.ErrTaskNotFound, raw)
	}
	return uint(id), nil
}
