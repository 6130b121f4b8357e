package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	tagmodel "blog-backend/internal/domains/tag/model"
	tagrepo "blog-backend/internal/domains/tag/repository"
	"blog-backend/internal/shared/apperror"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

type postService struct {
	postRepo  repository.PostRepository
	tagRepo   tagrepo.TagRepository
	txManager database.TxManager
	cache     cache.Cache
	now       func() time.Time
}

func NewPostService(
	postRepo repository.PostRepository,
	tagRepo tagrepo.TagRepository,
	txManager database.TxManager,
	c cache.Cache,
) ServiceInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &postService{
		postRepo:  postRepo,
		tagRepo:   tagRepo,
		txManager: txManager,
		cache:     c,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.PostResponse, error) {
	// STEP 1: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(model.ErrCodeInvalidInput, err)
	}
	names, err := tagmodel.NormalizeNames(req.Tags)
	if err != nil {
		return nil, err
	}

	// STEP 2: Build entity
	post := &model.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Status:   model.StatusDraft,
	}
	post.SetStatus(req.Status, s.now())

	// STEP 3: Insert post + tags trong một transaction
	err = s.txManager.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.postRepo.CreateWithTx(ctx, tx, post); err != nil {
			return err
		}
		return s.attachTags(ctx, tx, post.ID, names)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePopularTags(ctx)
	logger.Info("post created", map[string]interface{}{"post_id": post.ID.String(), "author_id": authorID.String()})

	// STEP 4: Reload kèm author + tags
	return s.reload(ctx, post.ID)
}

func (s *postService) UpdatePost(ctx context.Context, postID, authorID uuid.UUID, req model.UpdatePostRequest) (*model.PostResponse, error) {
	req.Normalize()

	err := s.txManager.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Fetch + lock để hai update đồng thời không ghi đè nhau
		post, err := s.postRepo.LockWithTx(ctx, tx, postID)
		if err != nil {
			return err
		}
		if err := model.AuthorizeMutation(post, authorID); err != nil {
			return err
		}

		if err := req.Validate(); err != nil {
			return apperror.FromValidation(model.ErrCodeInvalidInput, err)
		}
		var names []string
		if req.Tags != nil {
			if names, err = tagmodel.NormalizeNames(*req.Tags); err != nil {
				return err
			}
		}

		req.Apply(post, s.now())
		if err := s.postRepo.UpdateWithTx(ctx, tx, post); err != nil {
			return err
		}

		if req.Tags != nil {
			return s.attachTags(ctx, tx, post.ID, names)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePopularTags(ctx)
	return s.reload(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, postID, authorID uuid.UUID) error {
	err := s.txManager.WithinTransaction(ctx, func(tx pgx.Tx) error {
		post, err := s.postRepo.LockWithTx(ctx, tx, postID)
		if err != nil {
			return err
		}
		if err := model.AuthorizeMutation(post, authorID); err != nil {
			return err
		}
		return s.postRepo.DeleteWithTx(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	s.invalidatePopularTags(ctx)
	logger.Info("post deleted", map[string]interface{}{"post_id": postID.String(), "author_id": authorID.String()})
	return nil
}

// attachTags resolve (get-or-create) tag theo tên rồi thay toàn bộ liên kết
func (s *postService) attachTags(ctx context.Context, tx pgx.Tx, postID uuid.UUID, names []string) error {
	tags, err := s.tagRepo.ResolveWithTx(ctx, tx, names)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return s.postRepo.ReplaceTagsWithTx(ctx, tx, postID, ids)
}

// invalidatePopularTags: lỗi cache chỉ log, không làm fail request
func (s *postService) invalidatePopularTags(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, tagmodel.PopularTagsCachePattern); err != nil {
		logger.Warn("failed to invalidate popular tags cache", map[string]interface{}{"error": err.Error()})
	}
}

// =====================================================
// READS
// =====================================================

func (s *postService) reload(ctx context.Context, postID uuid.UUID) (*model.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := post.ToResponse()
	return &resp, nil
}

func (s *postService) GetPost(ctx context.Context, postID uuid.UUID, authorFilter *uuid.UUID) (*model.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if authorFilter != nil {
		if err := model.AuthorizeMutation(post, *authorFilter); err != nil {
			return nil, err
		}
	}
	resp := post.ToResponse()
	return &resp, nil
}

func (s *postService) ListPosts(ctx context.Context, req model.ListPostsRequest, page pagination.Params) (pagination.Page[model.PostResponse], error) {
	filter, err := req.ToFilter(model.StatusPublished)
	if err != nil {
		return pagination.Page[model.PostResponse]{}, err
	}
	return s.list(ctx, filter, page)
}

func (s *postService) ListMyPosts(ctx context.Context, authorID uuid.UUID, req model.ListPostsRequest, page pagination.Params) (pagination.Page[model.PostResponse], error) {
	filter, err := req.ToFilter("")
	if err != nil {
		return pagination.Page[model.PostResponse]{}, err
	}
	filter.AuthorID = &authorID
	return s.list(ctx, filter, page)
}

func (s *postService) ListPostsByTag(ctx context.Context, tagID uuid.UUID, page pagination.Params) (pagination.Page[model.PostResponse], error) {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		return pagination.Page[model.PostResponse]{}, err
	}

	published := model.StatusPublished
	return s.list(ctx, model.ListFilter{Status: &published, TagID: &tagID}, page)
}

func (s *postService) list(ctx context.Context, filter model.ListFilter, page pagination.Params) (pagination.Page[model.PostResponse], error) {
	page = page.Normalize()
	filter.Offset = page.Offset()
	filter.Limit = page.PageSize

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[model.PostResponse]{}, err
	}

	items := make([]model.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, posts[i].ToResponse())
	}
	return pagination.NewPage(items, total, page), nil
}
