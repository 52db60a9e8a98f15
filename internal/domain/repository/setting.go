package repository

import "context"

// SettingRepository stores application preferences.
type SettingRepository interface {
	// Get returns the value for key; found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}
