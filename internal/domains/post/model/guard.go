package model

import "github.com/google/uuid"

// AuthorizeMutation: chỉ author của post được sửa/xóa
// Không xét is_active, việc đó thuộc về AuthMiddleware
func AuthorizeMutation(post *Post, principalID uuid.UUID) error {
	if post.AuthorID != principalID {
		return NewPostForbiddenError()
	}
	return nil
}
