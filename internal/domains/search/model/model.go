package model

import (
	"strings"

	"github.com/google/uuid"

	postmodel "blog-backend/internal/domains/post/model"
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/apperror"
)

type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByDate      SortBy = "date"
)

const (
	ErrCodeInvalidSearch = "SRC001"
)

// DefaultRankWeights theo thứ tự {D, C, B, A}
var DefaultRankWeights = [4]float64{0.1, 0.2, 0.4, 1.0}

// SearchRequest query params của GET /search/posts
type SearchRequest struct {
	Query    string   `form:"q"`
	Tags     []string `form:"tags"`
	AuthorID string   `form:"author_id"`
	SortBy   string   `form:"sort_by"`
}

// Criteria là điều kiện search đã được parse, dùng ở repository
type Criteria struct {
	Query    string
	Tags     []string
	AuthorID *uuid.UUID
	SortBy   SortBy
	Offset   int
	Limit    int
}

// HasQuery: query rỗng/toàn khoảng trắng thì chỉ lọc, không match text
func (c Criteria) HasQuery() bool {
	return c.Query != ""
}

// RankByRelevance: chỉ xếp theo rank khi có query
func (c Criteria) RankByRelevance() bool {
	return c.HasQuery() && c.SortBy == SortByRelevance
}

func (r SearchRequest) ToCriteria() (Criteria, error) {
	c := Criteria{
		Query:  strings.TrimSpace(r.Query),
		Tags:   tagmodel.SplitFilter(r.Tags),
		SortBy: SortByRelevance,
	}

	switch s := SortBy(strings.ToLower(strings.TrimSpace(r.SortBy))); s {
	case "":
	case SortByRelevance, SortByDate:
		c.SortBy = s
	default:
		return c, apperror.Validation(ErrCodeInvalidSearch, "Invalid sort_by").
			WithField("sort_by", "must be one of relevance, date")
	}

	if id := strings.TrimSpace(r.AuthorID); id != "" {
		authorID, err := uuid.Parse(id)
		if err != nil {
			return c, apperror.Validation(ErrCodeInvalidSearch, "Invalid author_id").
				WithField("author_id", "must be a UUID")
		}
		c.AuthorID = &authorID
	}

	return c, nil
}

// Hit là một post tìm được, Rank chỉ có khi search có query
type Hit struct {
	Post postmodel.Post
	Rank *float64
}

type SearchResult struct {
	postmodel.PostResponse
	Rank *float64 `json:"rank,omitempty"`
}

func (h Hit) ToResult() SearchResult {
	return SearchResult{PostResponse: h.Post.ToResponse(), Rank: h.Rank}
}

// PopularTagsRequest query params của GET /search/tags/popular
type PopularTagsRequest struct {
	Limit *int `form:"limit"`
}

func (r PopularTagsRequest) Value() int {
	if r.Limit == nil {
		return tagmodel.DefaultPopularLimit
	}
	return *r.Limit
}
