package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared/apperror"
)

func TestSearchRequest_ToCriteria(t *testing.T) {
	author := uuid.New()

	c, err := SearchRequest{Query: "  go  ", Tags: []string{"Go,Web"}, AuthorID: author.String(), SortBy: "DATE"}.ToCriteria()
	require.NoError(t, err)
	assert.Equal(t, "go", c.Query)
	assert.Equal(t, []string{"go", "web"}, c.Tags)
	assert.Equal(t, author, *c.AuthorID)
	assert.Equal(t, SortByDate, c.SortBy)
	assert.False(t, c.RankByRelevance())

	c, err = SearchRequest{Query: "   "}.ToCriteria()
	require.NoError(t, err)
	assert.False(t, c.HasQuery())
	assert.Equal(t, SortByRelevance, c.SortBy)
	assert.False(t, c.RankByRelevance())

	c, err = SearchRequest{Query: "go"}.ToCriteria()
	require.NoError(t, err)
	assert.True(t, c.RankByRelevance())

	_, err = SearchRequest{SortBy: "popularity"}.ToCriteria()
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = SearchRequest{AuthorID: "x"}.ToCriteria()
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestPopularTagsRequest_Value(t *testing.T) {
	assert.Equal(t, 20, PopularTagsRequest{}.Value())
	n := 5
	assert.Equal(t, 5, PopularTagsRequest{Limit: &n}.Value())
}
