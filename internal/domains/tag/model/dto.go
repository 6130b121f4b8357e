package model

import (
	"time"

	"github.com/google/uuid"
)

type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	PostCount *int      `json:"post_count,omitempty"`
}

func (t Tag) ToResponse() TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func (t TagWithCount) ToResponse() TagResponse {
	resp := t.Tag.ToResponse()
	count := t.PostCount
	resp.PostCount = &count
	return resp
}

// PopularTagResponse là một dòng kết quả của popular tags
type PopularTagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PostCount int       `json:"post_count"`
}

// ListTagsRequest query params của GET /tags
type ListTagsRequest struct {
	IncludeCount *bool `form:"include_count"`
}

func (r ListTagsRequest) WithCount() bool {
	return r.IncludeCount == nil || *r.IncludeCount
}
