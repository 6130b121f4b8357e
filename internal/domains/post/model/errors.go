package model

import (
	"fmt"

	"blog-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodePostNotFound  = "PST001"
	ErrCodePostForbidden = "PST002"
	ErrCodeInvalidInput  = "PST003"
	ErrCodeInvalidFilter = "PST004"
)

func NewPostNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodePostNotFound, "Post not found")
}

func NewPostForbiddenError() *apperror.Error {
	return apperror.Forbidden(ErrCodePostForbidden, "You are not the author of this post")
}

func NewInvalidFilterError(field, value string) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidFilter, "Invalid query parameter").
		WithField(field, fmt.Sprintf("invalid value %q", value))
}
