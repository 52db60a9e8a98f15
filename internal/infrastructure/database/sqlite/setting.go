package sqlite

import (
	"context"
	"errors"
	"fmt"
	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *gorm.DB) repository.SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the stored value for key.
func (r *settingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var setting entity.Setting
	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set upserts the value for key.
func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	setting := entity.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}
