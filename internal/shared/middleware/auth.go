package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/apperror"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
)

const (
	ContextKeyUserID    = "userID"
	ContextKeyPrincipal = "principal"
)

// Principal là user đã xác thực của request hiện tại
type Principal struct {
	ID       uuid.UUID
	IsActive bool
}

// AccessTokenValidator parse và verify access token
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// PrincipalLoader load trạng thái hiện tại của user từ storage
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (Principal, error)
}

// AuthMiddleware xác thực Bearer access token
// Token sai/hết hạn, user không tồn tại → 401, user bị khóa → 403
func AuthMiddleware(tokens AccessTokenValidator, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ "Authorization: Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 2. Verify JWT
		claims, err := tokens.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}

		// 3. Load user để kiểm tra is_active
		principal, err := users.LoadPrincipal(c.Request.Context(), userID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				response.Unauthorized(c, "User no longer exists")
			} else {
				log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to load principal")
				response.InternalServerError(c)
			}
			c.Abort()
			return
		}

		if !principal.IsActive {
			response.Forbidden(c, "User account is inactive")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, principal.ID)
		c.Set(ContextKeyPrincipal, principal)

		c.Next()
	}
}

// GetUserID lấy user ID do AuthMiddleware gắn vào context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
