package service

import (
	"context"

	"blog-backend/internal/domains/tag/model"
)

type ServiceInterface interface {
	ListTags(ctx context.Context, includeCount bool) ([]model.TagResponse, error)
}
