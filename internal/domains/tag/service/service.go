package service

import (
	"context"
	"fmt"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/domains/tag/repository"
)

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) ServiceInterface {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context, includeCount bool) ([]model.TagResponse, error) {
	if includeCount {
		tags, err := s.tagRepo.ListWithCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags: %w", err)
		}
		out := make([]model.TagResponse, 0, len(tags))
		for _, t := range tags {
			out = append(out, t.ToResponse())
		}
		return out, nil
	}

	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]model.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ToResponse())
	}
	return out, nil
}
