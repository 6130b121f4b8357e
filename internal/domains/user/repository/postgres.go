package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) UserRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{pool: pool, cache: c, cacheTTL: cacheTTL}
}

const userColumns = `id, email, username, password_hash, full_name, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, full_name, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.FullName, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		switch database.UniqueConstraint(err) {
		case model.ConstraintEmailUnique:
			return model.ErrEmailExists
		case model.ConstraintUsernameUnique:
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID: cache-aside, bản cache không có password hash
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	cacheKey := model.UserCacheKey(id)

	var cached model.User
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("user cache read failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, user, r.cacheTTL); err != nil {
		logger.Warn("user cache write failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}
	return user, nil
}

// FindByEmail luôn đọc DB vì login cần password hash
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}
