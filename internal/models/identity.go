package model

import "time"

// Identity is a credential record owned by the local identity provider.
type Identity struct {
	UID          string    `gorm:"primaryKey;size:128" json:"uid"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `json:"displayName"`
	PhotoURL     string    `json:"photoUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
