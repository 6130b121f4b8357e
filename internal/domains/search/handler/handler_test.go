package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/search/model"
	"blog-backend/internal/domains/search/service"
	tagmodel "blog-backend/internal/domains/tag/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRepo struct {
	criteria model.Criteria
	limit    int
}

func (r *fakeRepo) Search(ctx context.Context, c model.Criteria) ([]model.Hit, int, error) {
	r.criteria = c
	return nil, 0, nil
}

func (r *fakeRepo) PopularTags(ctx context.Context, limit int) ([]tagmodel.TagWithCount, error) {
	r.limit = limit
	return nil, nil
}

func newRouter(repo *fakeRepo) *gin.Engine {
	h := NewSearchHandler(service.NewSearchService(repo, nil, 0))
	r := gin.New()
	r.GET("/search/posts", h.SearchPosts)
	r.GET("/search/tags/popular", h.PopularTags)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSearchPostsHandler(t *testing.T) {
	repo := &fakeRepo{}
	r := newRouter(repo)

	w := get(r, "/search/posts?q=golang+tips&tags=go,web&sort_by=date&page=2&page_size=10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "golang tips", repo.criteria.Query)
	assert.Equal(t, []string{"go", "web"}, repo.criteria.Tags)
	assert.Equal(t, model.SortByDate, repo.criteria.SortBy)
	assert.Equal(t, 10, repo.criteria.Offset)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestSearchPostsHandler_BadParams(t *testing.T) {
	r := newRouter(&fakeRepo{})

	for _, path := range []string{
		"/search/posts?page=0",
		"/search/posts?page_size=0",
		"/search/posts?page_size=101",
		"/search/posts?sort_by=views",
		"/search/posts?author_id=nope",
	} {
		assert.Equal(t, http.StatusBadRequest, get(r, path).Code, path)
	}
}

func TestPopularTagsHandler(t *testing.T) {
	repo := &fakeRepo{}
	r := newRouter(repo)

	require.Equal(t, http.StatusOK, get(r, "/search/tags/popular").Code)
	assert.Equal(t, tagmodel.DefaultPopularLimit, repo.limit)

	require.Equal(t, http.StatusOK, get(r, "/search/tags/popular?limit=100").Code)
	assert.Equal(t, 100, repo.limit)

	assert.Equal(t, http.StatusBadRequest, get(r, "/search/tags/popular?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/search/tags/popular?limit=101").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/search/tags/popular?limit=abc").Code)
}

