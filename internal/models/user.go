package model

import (
	"time"

	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
)

// User is keyed by the identity provider's subject id. Role is omitted from
// the default JSON encoding; admin responses use AdminView.
type User struct {
	ID          string                `gorm:"primaryKey;size:128" json:"id"`
	Name        *string               `json:"name"`
	Photo       *string               `json:"photo"`
	Phone       *string               `json:"phone"`
	Email       *string               `gorm:"index" json:"email"`
	BirthDate   *time.Time            `json:"birthDate"`
	Gender      *constants.Gender     `gorm:"type:varchar(32)" json:"gender"`
	Role        constants.UserRole    `gorm:"type:varchar(32);not null;default:user" json:"-"`
	Status      constants.UserStatus  `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	Department  *constants.Department `gorm:"type:varchar(32)" json:"department"`
	Designation *string               `json:"designation"`
	EmployeeID  *string               `gorm:"uniqueIndex" json:"employeeId"`

	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type UserAdminView struct {
	User
	Role constants.UserRole `json:"role"`
}

func (u User) AdminView() UserAdminView {
	return UserAdminView{User: u, Role: u.Role}
}
