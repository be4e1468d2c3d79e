package models

import (
	"time"
)

type Task struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	// OwnerID is written on insert only.
	OwnerID   uint64    `gorm:"not null;index;<-:create" json:"owner_id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Category  Category  `gorm:"type:varchar(50);not null;index" json:"category"`
	Priority  Priority  `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate   *string   `gorm:"type:varchar(50)" json:"due_date"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// HasDueDate reports whether a non-empty due date is stored.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && *t.DueDate != ""
}
