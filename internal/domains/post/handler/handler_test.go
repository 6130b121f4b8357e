package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	err error

	gotAuthorFilter *uuid.UUID
	gotUpdate       model.UpdatePostRequest
	gotList         model.ListPostsRequest
	gotPage         pagination.Params
	deleted         uuid.UUID
}

func (s *stubService) post(id uuid.UUID) *model.PostResponse {
	return &model.PostResponse{ID: id, Title: "t", Tags: []model.TagSummary{}}
}

func (s *stubService) CreatePost(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.PostResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post(uuid.New()), nil
}

func (s *stubService) UpdatePost(ctx context.Context, postID, authorID uuid.UUID, req model.UpdatePostRequest) (*model.PostResponse, error) {
	s.gotUpdate = req
	if s.err != nil {
		return nil, s.err
	}
	return s.post(postID), nil
}

func (s *stubService) DeletePost(ctx context.Context, postID, authorID uuid.UUID) error {
	s.deleted = postID
	return s.err
}

func (s *stubService) GetPost(ctx context.Context, postID uuid.UUID, authorFilter *uuid.UUID) (*model.PostResponse, error) {
	s.gotAuthorFilter = authorFilter
	if s.err != nil {
		return nil, s.err
	}
	return s.post(postID), nil
}

func (s *stubService) page(req model.ListPostsRequest, p pagination.Params) (pagination.Page[model.PostResponse], error) {
	s.gotList, s.gotPage = req, p
	if s.err != nil {
		return pagination.Page[model.PostResponse]{}, s.err
	}
	return pagination.NewPage([]model.PostResponse(nil), 0, p), nil
}

func (s *stubService) ListPosts(ctx context.Context, req model.ListPostsRequest, p pagination.Params) (pagination.Page[model.PostResponse], error) {
	return s.page(req, p)
}

func (s *stubService) ListMyPosts(ctx context.Context, authorID uuid.UUID, req model.ListPostsRequest, p pagination.Params) (pagination.Page[model.PostResponse], error) {
	return s.page(req, p)
}

func (s *stubService) ListPostsByTag(ctx context.Context, tagID uuid.UUID, p pagination.Params) (pagination.Page[model.PostResponse], error) {
	return s.page(model.ListPostsRequest{}, p)
}

func newRouter(svc *stubService, user uuid.UUID) *gin.Engine {
	h := NewPostHandler(svc)
	auth := func(c *gin.Context) {
		if user != uuid.Nil {
			c.Set(middleware.ContextKeyUserID, user)
		}
	}

	r := gin.New()
	r.GET("/posts", h.ListPosts)
	r.GET("/posts/:id", h.GetPost)
	r.POST("/posts", auth, h.CreatePost)
	r.PATCH("/posts/:id", auth, h.UpdatePost)
	r.DELETE("/posts/:id", auth, h.DeletePost)
	r.GET("/me/posts", auth, h.ListMyPosts)
	r.GET("/me/posts/:id", auth, h.GetMyPost)
	r.GET("/tags/:id/posts", h.ListPostsByTag)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostHandler(t *testing.T) {
	user := uuid.New()
	svc := &stubService{}

	w := do(newRouter(svc, user), http.MethodPost, "/posts", `{"title":"t","content":"c","tags":["go"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))

	w = do(newRouter(svc, uuid.Nil), http.MethodPost, "/posts", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newRouter(svc, user), http.MethodPost, "/posts", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = tagmodel.NewTooManyTagsError(11)
	w = do(newRouter(svc, user), http.MethodPost, "/posts", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, tagmodel.ErrCodeTooManyTags, body.Error.Code)
	assert.Contains(t, body.Error.Details, "tags")
}

func TestUpdatePostHandler_TagsPresence(t *testing.T) {
	user := uuid.New()
	svc := &stubService{}
	r := newRouter(svc, user)
	path := "/posts/" + uuid.NewString()

	w := do(r, http.MethodPatch, path, `{"title":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotUpdate.Tags)

	w = do(r, http.MethodPatch, path, `{"tags":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotUpdate.Tags)
	assert.Empty(t, *svc.gotUpdate.Tags)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/posts/not-a-uuid", `{}`).Code)

	svc.err = model.NewPostForbiddenError()
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPatch, path, `{"title":"x"}`).Code)

	svc.err = model.NewPostNotFoundError()
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, path, `{"title":"x"}`).Code)
}

func TestDeletePostHandler(t *testing.T) {
	svc := &stubService{}
	id := uuid.New()

	w := do(newRouter(svc, uuid.New()), http.MethodDelete, "/posts/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, id, svc.deleted)
}

func TestGetPostHandlers(t *testing.T) {
	user := uuid.New()
	svc := &stubService{}
	r := newRouter(svc, user)
	id := uuid.NewString()

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/posts/"+id, "").Code)
	assert.Nil(t, svc.gotAuthorFilter)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/me/posts/"+id, "").Code)
	require.NotNil(t, svc.gotAuthorFilter)
	assert.Equal(t, user, *svc.gotAuthorFilter)
}

func TestListPostsHandler(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc, uuid.Nil)

	w := do(r, http.MethodGet, "/posts?tags=go,web&tags=db&status=published&page=2&page_size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"go,web", "db"}, svc.gotList.Tags)
	assert.Equal(t, "published", svc.gotList.Status)
	assert.Equal(t, pagination.Params{Page: 2, PageSize: 5}, svc.gotPage)

	var body struct {
		Data pagination.Page[model.PostResponse] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Data.Items)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/posts?page=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/posts?page_size=101", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/tags/"+uuid.NewString()+"/posts?page=-1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me/posts", "").Code)
}
