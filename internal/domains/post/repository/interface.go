package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blog-backend/internal/domains/post/model"
)

type PostRepository interface {
	// FindByID load post kèm author và tags
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List trả về trang post theo filter và tổng số post khớp filter
	List(ctx context.Context, filter model.ListFilter) ([]model.Post, int, error)

	// LockWithTx SELECT ... FOR UPDATE hàng posts (không kèm author/tags)
	LockWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Post, error)

	CreateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// ReplaceTagsWithTx xóa toàn bộ liên kết cũ rồi gắn tagIDs theo thứ tự
	ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, postID uuid.UUID, tagIDs []uuid.UUID) error
}
