package model

import (
	"time"

	"github.com/google/uuid"
)

// User ánh xạ 1:1 với bảng users
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCacheKey: bản cache không chứa password hash (json:"-")
func UserCacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}
