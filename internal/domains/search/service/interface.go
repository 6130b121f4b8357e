package service

import (
	"context"

	"blog-backend/internal/domains/search/model"
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	SearchPosts(ctx context.Context, req model.SearchRequest, page pagination.Params) (pagination.Page[model.SearchResult], error)
	PopularTags(ctx context.Context, limit int) ([]tagmodel.PopularTagResponse, error)
}
