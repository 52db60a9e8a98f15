package entity

import "time"

const (
	DefaultCategory = "Uncategorized"
	DefaultPriority = 3
	MinPriority     = 1
	MaxPriority     = 5
)

// Task is a tracked piece of work with a deadline.
type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;not null"`
	Category    string    `gorm:"column:category;index;default:Uncategorized"`
	Priority    int       `gorm:"column:priority;default:3"`
	Deadline    time.Time `gorm:"column:deadline;index"`
	IsCompleted bool      `gorm:"column:is_completed;index"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:create_time"`
	UpdatedAt   time.Time `gorm:"column:update_time"`
}

// TableName specifies the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
