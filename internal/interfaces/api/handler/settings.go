package handler

import (
	"fmt"
	"net/http"
	"taskreminder/internal/application/dto"
	"taskreminder/internal/application/service"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SettingsHandler serves the reminder settings endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
	log             logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		log:             log,
	}
}

// GetReminderSettings handles GET /settings/reminder.
func (h *SettingsHandler) GetReminderSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settingsService.ReminderSettings())
}

// UpdateReminderSettings handles PUT /settings/reminder.
func (h *SettingsHandler) UpdateReminderSettings(c echo.Context) error {
	var req dto.UpdateReminderSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if req.ThresholdMinutes < dto.MinThresholdMinutes || req.ThresholdMinutes > dto.MaxThresholdMinutes {
		return respondError(c, h.log, fmt.Errorf("%w: must be between %d and %d minutes, got %d",
			appErrors.ErrInvalidThreshold, dto.MinThresholdMinutes, dto.MaxThresholdMinutes, req.ThresholdMinutes))
	}
	resp, err := h.settingsService.UpdateThreshold(c.Request().Context(), req.ThresholdMinutes)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info(fmt.Sprintf("Reminder threshold set to %d minutes", resp.ThresholdMinutes))
	return c.JSON(http.StatusOK, resp)
}
