package service

import (
	"context"
	"fmt"
	"strconv"
	"taskreminder/internal/application/dto"
	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/repository"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"
	"time"
)

// SettingsService exposes the runtime-adjustable reminder settings.
type SettingsService interface {
	// ReminderSettings returns the current scheduler configuration.
	ReminderSettings() dto.ReminderSettingsResponse
	// UpdateThreshold persists and applies a new reminder threshold.
	UpdateThreshold(ctx context.Context, minutes int) (dto.ReminderSettingsResponse, error)
	// RestoreThreshold applies the persisted threshold, if any.
	RestoreThreshold(ctx context.Context) error
}

type settingsService struct {
	scheduler   SchedulerService
	settingRepo repository.SettingRepository
	log         logger.Logger
}

// NewSettingsService creates a new instance of SettingsService implementation.
func NewSettingsService(scheduler SchedulerService, settingRepo repository.SettingRepository, log logger.Logger) SettingsService {
	return &settingsService{
		scheduler:   scheduler,
		settingRepo: settingRepo,
		log:         log,
	}
}

func (s *settingsService) ReminderSettings() dto.ReminderSettingsResponse {
	return dto.ReminderSettingsResponse{
		ThresholdMinutes:    s.scheduler.Threshold(),
		PollIntervalSeconds: int(s.scheduler.PollInterval() / time.Second),
		OverduePolicy:       s.scheduler.OverduePolicy(),
		Running:             s.scheduler.Running(),
	}
}

// UpdateThreshold persists first so a failed write leaves the running value untouched.
func (s *settingsService) UpdateThreshold(ctx context.Context, minutes int) (dto.ReminderSettingsResponse, error) {
	if minutes <= 0 {
		return s.ReminderSettings(), fmt.Errorf("%w: got %d", appErrors.ErrInvalidThreshold, minutes)
	}
	if err := s.settingRepo.Set(ctx, entity.SettingReminderThreshold, strconv.Itoa(minutes)); err != nil {
		s.log.Error("Failed to persist reminder threshold", err)
		return s.ReminderSettings(), fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.scheduler.SetThreshold(minutes); err != nil {
		return s.ReminderSettings(), err
	}
	return s.ReminderSettings(), nil
}

func (s *settingsService) RestoreThreshold(ctx context.Context) error {
	raw, found, err := s.settingRepo.Get(ctx, entity.SettingReminderThreshold)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if !found {
		s.log.Debug("No persisted reminder threshold; using configured default")
		return nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Ignoring malformed persisted threshold %q", raw))
		return nil
	}
	if err := s.scheduler.SetThreshold(minutes); err != nil {
		s.log.Warn(fmt.Sprintf("Ignoring persisted threshold %d: %v", minutes, err))
		return nil
	}
	s.log.Info(fmt.Sprintf("Restored reminder threshold of %d minutes", minutes))
	return nil
}
