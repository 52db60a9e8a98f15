package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskreminder/internal/domain/constant"
	"taskreminder/internal/domain/entity"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"
)

type memSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func (r *memSettingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *memSettingRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[key] = value
	return nil
}

func TestSettingsService_UpdateThreshold(t *testing.T) {
	sched := newTestScheduler(t, &fakeStore{}, &fakeSink{}, SchedulerConfig{})
	repo := &memSettingRepo{}
	svc := NewSettingsService(sched, repo, logger.Nop())

	resp, err := svc.UpdateThreshold(context.Background(), 45)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.ThresholdMinutes)
	assert.Equal(t, 60, resp.PollIntervalSeconds)
	assert.Equal(t, constant.OverdueRepeat, resp.OverduePolicy)
	assert.Equal(t, 45, sched.Threshold())
	assert.Equal(t, "45", repo.values[entity.SettingReminderThreshold])

	resp, err = svc.UpdateThreshold(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrInvalidThreshold)
	assert.Equal(t, 45, resp.ThresholdMinutes)
}

func TestSettingsService_UpdateThresholdPersistFailure(t *testing.T) {
	sched := newTestScheduler(t, &fakeStore{}, &fakeSink{}, SchedulerConfig{})
	repo := &memSettingRepo{err: errors.New("locked")}
	svc := NewSettingsService(sched, repo, logger.Nop())

	_, err := svc.UpdateThreshold(context.Background(), 10)
	assert.ErrorIs(t, err, appErrors.ErrDatabaseOperation)
	assert.Equal(t, 30, sched.Threshold())
}

func TestSettingsService_RestoreThreshold(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		want   int
	}{
		{name: "nothing stored", stored: nil, want: 30},
		{name: "valid", stored: map[string]string{entity.SettingReminderThreshold: "90"}, want: 90},
		{name: "malformed", stored: map[string]string{entity.SettingReminderThreshold: "soon"}, want: 30},
		{name: "non-positive", stored: map[string]string{entity.SettingReminderThreshold: "-1"}, want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := newTestScheduler(t, &fakeStore{}, &fakeSink{}, SchedulerConfig{})
			svc := NewSettingsService(sched, &memSettingRepo{values: tt.stored}, logger.Nop())
			require.NoError(t, svc.RestoreThreshold(context.Background()))
			assert.Equal(t, tt.want, sched.Threshold())
		})
	}
}

func TestSettingsService_RestoreThresholdStoreError(t *testing.T) {
	sched := newTestScheduler(t, &fakeStore{}, &fakeSink{}, SchedulerConfig{})
	svc := NewSettingsService(sched, &memSettingRepo{err: errors.New("locked")}, logger.Nop())
	assert.ErrorIs(t, svc.RestoreThreshold(context.Background()), appErrors.ErrDatabaseOperation)
}
