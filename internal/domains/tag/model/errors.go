package model

import (
	"fmt"

	"blog-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeTagNotFound    = "TAG001"
	ErrCodeTooManyTags    = "TAG002"
	ErrCodeInvalidTagName = "TAG003"
	ErrCodeInvalidLimit   = "TAG004"
)

func NewTagNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeTagNotFound, "Tag not found")
}

func NewTooManyTagsError(count int) *apperror.Error {
	return apperror.Validation(ErrCodeTooManyTags,
		fmt.Sprintf("Maximum %d tags allowed per post", MaxTagsPerPost)).
		WithField("tags", fmt.Sprintf("got %d tags, maximum is %d", count, MaxTagsPerPost))
}

func NewInvalidTagNameError(tag, reason string) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidTagName, "Invalid tag name").
		WithField("tags", fmt.Sprintf("%q %s", tag, reason))
}

func NewInvalidLimitError(limit int) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidLimit, "Invalid limit").
		WithField("limit", fmt.Sprintf("must be between 1 and %d, got %d", MaxPopularLimit, limit))
}
