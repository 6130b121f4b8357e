package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blog-backend/internal/domains/tag/model"
)

type TagRepository interface {
	// ResolveWithTx trả về tag cho từng name theo đúng thứ tự, tạo mới nếu chưa có
	// names phải đã qua model.NormalizeNames
	ResolveWithTx(ctx context.Context, tx pgx.Tx, names []string) ([]model.Tag, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)

	// List trả về toàn bộ tag theo name ASC
	List(ctx context.Context) ([]model.Tag, error)

	// ListWithCounts giống List, kèm số post published (kể cả tag có 0 post)
	ListWithCounts(ctx context.Context) ([]model.TagWithCount, error)
}
