package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/repository"
	"blog-backend/internal/shared/apperror"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
	bcryptCost int
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager, bcryptCost int) ServiceInterface {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

// Register tạo tài khoản mới
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	// STEP 1: Validate input
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(model.ErrCodeInvalidInput, err)
	}

	// STEP 2: Check trùng email / username trước để trả lỗi rõ ràng
	// Unique constraint trong DB vẫn là nguồn sự thật khi có race
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	exists, err = s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	// STEP 3: Hash password
	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// STEP 4: Insert
	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{"user_id": user.ID.String()})

	resp := user.ToResponse()
	return &resp, nil
}

// Login xác thực email + password và cấp cặp token
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(model.ErrCodeInvalidInput, err)
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrAccountInactive
	}

	return s.issueTokens(user.ID)
}

// RefreshToken đổi refresh token hợp lệ lấy cặp token mới
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, model.ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, model.ErrAccountInactive
	}

	return s.issueTokens(user.ID)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) LoadPrincipal(ctx context.Context, userID uuid.UUID) (middleware.Principal, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return middleware.Principal{}, err
	}
	return middleware.Principal{ID: user.ID, IsActive: user.IsActive}, nil
}

func (s *userService) issueTokens(userID uuid.UUID) (*model.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(userID.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    model.TokenTypeBearer,
		ExpiresIn:    int(s.jwtManager.AccessTTL().Seconds()),
	}, nil
}
