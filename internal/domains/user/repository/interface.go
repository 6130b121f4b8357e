package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
)

// UserRepository định nghĩa data access cho users
type UserRepository interface {
	// Create insert user mới, trả về ErrEmailExists / ErrUsernameExists khi trùng
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
