// Package testutil chứa helper cho integration test với PostgreSQL thật
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/infrastructure/database"
)

// EnvDatabaseURL trỏ tới database dùng riêng cho test, dữ liệu sẽ bị truncate
const EnvDatabaseURL = "BLOG_TEST_DATABASE_URL"

// NewPool kết nối, chạy migration và truncate dữ liệu
// Skip test khi BLOG_TEST_DATABASE_URL không được set
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping integration test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	Truncate(t, pool)
	return pool
}

func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE post_tags, posts, tags, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// CreateUser insert user tối thiểu và trả về id
func CreateUser(t *testing.T, pool *pgxpool.Pool, username string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, username, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		username+"@example.com", username,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
