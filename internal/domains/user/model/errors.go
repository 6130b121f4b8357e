package model

import "blog-backend/internal/shared/apperror"

// Error codes
const (
	ErrCodeUserNotFound        = "USR001"
	ErrCodeEmailExists         = "USR002"
	ErrCodeUsernameExists      = "USR003"
	ErrCodeInvalidInput        = "USR004"
	ErrCodeInvalidCredentials  = "AUTH001"
	ErrCodeAccountInactive     = "AUTH002"
	ErrCodeInvalidRefreshToken = "AUTH003"
)

// Tên unique constraint trong migration 000001
const (
	ConstraintEmailUnique    = "users_email_key"
	ConstraintUsernameUnique = "users_username_key"
)

var (
	ErrUserNotFound        = apperror.NotFound(ErrCodeUserNotFound, "User not found")
	ErrEmailExists         = apperror.Conflict(ErrCodeEmailExists, "Email already registered")
	ErrUsernameExists      = apperror.Conflict(ErrCodeUsernameExists, "Username already taken")
	ErrInvalidCredentials  = apperror.Unauthorized(ErrCodeInvalidCredentials, "Incorrect email or password")
	ErrAccountInactive     = apperror.Forbidden(ErrCodeAccountInactive, "Inactive user")
	ErrInvalidRefreshToken = apperror.Unauthorized(ErrCodeInvalidRefreshToken, "Invalid refresh token")
)
