package repository

import (
	"context"

	"blog-backend/internal/domains/search/model"
	tagmodel "blog-backend/internal/domains/tag/model"
)

type SearchRepository interface {
	// Search trả về hits của trang hiện tại và tổng số post khớp
	Search(ctx context.Context, c model.Criteria) ([]model.Hit, int, error)

	// PopularTags: tag có ít nhất một post published, post_count DESC, name ASC
	PopularTags(ctx context.Context, limit int) ([]tagmodel.TagWithCount, error)
}
