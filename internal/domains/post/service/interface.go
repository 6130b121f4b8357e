package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.PostResponse, error)
	UpdatePost(ctx context.Context, postID, authorID uuid.UUID, req model.UpdatePostRequest) (*model.PostResponse, error)
	DeletePost(ctx context.Context, postID, authorID uuid.UUID) error

	// GetPost: authorFilter != nil thì chỉ trả post của author đó (Forbidden nếu khác)
	GetPost(ctx context.Context, postID uuid.UUID, authorFilter *uuid.UUID) (*model.PostResponse, error)

	// ListPosts mặc định chỉ trả post published
	ListPosts(ctx context.Context, req model.ListPostsRequest, page pagination.Params) (pagination.Page[model.PostResponse], error)
	// ListMyPosts trả post của author ở mọi status
	ListMyPosts(ctx context.Context, authorID uuid.UUID, req model.ListPostsRequest, page pagination.Params) (pagination.Page[model.PostResponse], error)
	// ListPostsByTag trả post published mang tag, NotFound nếu tag không tồn tại
	ListPostsByTag(ctx context.Context, tagID uuid.UUID, page pagination.Params) (pagination.Page[model.PostResponse], error)
}
