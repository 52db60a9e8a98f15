package entity

// SettingReminderThreshold holds the reminder lead time in minutes.
const SettingReminderThreshold = "reminder_threshold_minutes"

// Setting is a persisted key/value application preference.
type Setting struct {
	Key   string `gorm:"column:setting_key;primaryKey"`
	Value string `gorm:"column:setting_value"`
}

// TableName specifies the table name for the Setting entity.
func (Setting) TableName() string {
	return "app_setting"
}
