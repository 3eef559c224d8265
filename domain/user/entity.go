package user

import (
	"time"
)

// User represents a registered member of the exchange community.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Session is the authenticated caller identity carried into every
// boundary call, extracted from the bearer token.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
