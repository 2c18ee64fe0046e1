package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
)

type Task struct {
	ID                    uint                        `gorm:"primaryKey" json:"id"`
	Title                 string                      `gorm:"not null" json:"title"`
	Type                  constants.TaskType          `gorm:"type:varchar(32);not null;default:task" json:"type"`
	Priority              constants.TaskPriority      `gorm:"type:varchar(16);not null;default:medium" json:"priority"`
	Status                constants.TaskStatus        `gorm:"type:varchar(20);not null;default:new;index" json:"status"`
	TargetCompletionDate  time.Time                   `gorm:"not null;index" json:"targetCompletionDate"`
	Description           string                      `gorm:"type:text;not null" json:"description"`
	BusinessJustification string                      `gorm:"type:text;not null" json:"businessJustification"`
	TechnicalRequirements *string                     `gorm:"type:text" json:"technicalRequirements"`
	Dependencies          *string                     `gorm:"type:text" json:"dependencies"`
	AcceptanceCriteria    string                      `gorm:"type:text;not null" json:"acceptanceCriteria"`
	AdminPanelLink        *string                     `json:"adminPanelLink"`
	StoryPoints           int                         `gorm:"not null;default:0" json:"storyPoints"`
	Progress              int                         `gorm:"not null;default:0" json:"progress"`
	Attachments           datatypes.JSONSlice[string] `json:"attachments"`
	CompletedAt           *time.Time                  `json:"completedAt"`

	RequestedByID string `gorm:"size:128;not null;index" json:"requestedById"`
	RequestedBy   *User  `gorm:"foreignKey:RequestedByID" json:"requestedBy,omitempty"`
	AssignedToID  string `gorm:"size:128;not null;index" json:"assignedToId"`
	AssignedTo    *User  `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
