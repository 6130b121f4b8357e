package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/shared/middleware"
)

// ServiceInterface định nghĩa business logic cho user và auth
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)

	// LoadPrincipal phục vụ AuthMiddleware
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (middleware.Principal, error)
}
