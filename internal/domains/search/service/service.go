package service

import (
	"context"
	"time"

	"blog-backend/internal/domains/search/model"
	"blog-backend/internal/domains/search/repository"
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

type searchService struct {
	repo     repository.SearchRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewSearchService(repo repository.SearchRepository, c cache.Cache, popularTagsTTL time.Duration) ServiceInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &searchService{repo: repo, cache: c, cacheTTL: popularTagsTTL}
}

func (s *searchService) SearchPosts(ctx context.Context, req model.SearchRequest, page pagination.Params) (pagination.Page[model.SearchResult], error) {
	criteria, err := req.ToCriteria()
	if err != nil {
		return pagination.Page[model.SearchResult]{}, err
	}

	page = page.Normalize()
	criteria.Offset = page.Offset()
	criteria.Limit = page.PageSize

	hits, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return pagination.Page[model.SearchResult]{}, err
	}

	items := make([]model.SearchResult, 0, len(hits))
	for _, h := range hits {
		items = append(items, h.ToResult())
	}
	return pagination.NewPage(items, total, page), nil
}

// PopularTags: cache-aside theo limit, bị invalidate mỗi khi post thay đổi
func (s *searchService) PopularTags(ctx context.Context, limit int) ([]tagmodel.PopularTagResponse, error) {
	if limit < 1 || limit > tagmodel.MaxPopularLimit {
		return nil, tagmodel.NewInvalidLimitError(limit)
	}

	cacheKey := tagmodel.PopularTagsCacheKey(limit)

	var cached []tagmodel.PopularTagResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("popular tags cache read failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}
	if found {
		return cached, nil
	}

	tags, err := s.repo.PopularTags(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]tagmodel.PopularTagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagmodel.PopularTagResponse{ID: t.ID, Name: t.Name, PostCount: t.PostCount})
	}

	if s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, cacheKey, out, s.cacheTTL); err != nil {
			logger.Warn("popular tags cache write failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
		}
	}
	return out, nil
}
