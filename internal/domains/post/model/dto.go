package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	tagmodel "blog-backend/internal/domains/tag/model"
)

var statusRule = validation.In(StatusDraft, StatusPublished, StatusArchived).
	Error("must be one of draft, published, archived")

// notBlankRule từ chối chuỗi chỉ gồm khoảng trắng, nil/rỗng để Required/NilOrNotEmpty xử lý
var notBlankRule = validation.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "must not be blank")
	}
	return nil
})

// ========================================
// REQUEST DTOs
// ========================================

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt *string  `json:"excerpt,omitempty"`
	Status  Status   `json:"status"`
	Tags    []string `json:"tags"`
}

func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Status == "" {
		r.Status = StatusDraft
	}
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 200).Error("title must be 1-200 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			notBlankRule,
		),
		validation.Field(&r.Excerpt,
			validation.RuneLength(0, 500).Error("excerpt must be at most 500 characters"),
		),
		validation.Field(&r.Status, statusRule),
	)
}

// UpdatePostRequest: field nil = không đổi
// Tags != nil (kể cả []) thay toàn bộ tag set; Excerpt = "" xóa excerpt
type UpdatePostRequest struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Excerpt *string   `json:"excerpt,omitempty"`
	Status  *Status   `json:"status,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

func (r *UpdatePostRequest) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.RuneLength(1, 200).Error("title must be 1-200 characters"),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content must not be empty"),
			notBlankRule,
		),
		validation.Field(&r.Excerpt,
			validation.RuneLength(0, 500).Error("excerpt must be at most 500 characters"),
		),
		validation.Field(&r.Status,
			validation.NilOrNotEmpty.Error("status must not be empty"),
			statusRule,
		),
	)
}

// Apply ghi các field có mặt vào post và bump updated_at, tag set do service xử lý
func (r UpdatePostRequest) Apply(p *Post, now time.Time) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Excerpt != nil {
		if *r.Excerpt == "" {
			p.Excerpt = nil
		} else {
			excerpt := *r.Excerpt
			p.Excerpt = &excerpt
		}
	}
	if r.Status != nil {
		p.SetStatus(*r.Status, now)
	}
	p.UpdatedAt = now
}

// ListPostsRequest query params lọc của GET /posts và /me/posts
// page/page_size được parse riêng bằng pagination.Parse
type ListPostsRequest struct {
	Status   string   `form:"status"`
	AuthorID string   `form:"author_id"`
	Tags     []string `form:"tags"`
}

// ListFilter là bộ lọc đã được parse, dùng ở repository
type ListFilter struct {
	Status   *Status
	AuthorID *uuid.UUID
	TagID    *uuid.UUID
	Tags     []string
	Offset   int
	Limit    int
}

// ToFilter parse query params. defaultStatus rỗng nghĩa là không lọc theo status
func (r ListPostsRequest) ToFilter(defaultStatus Status) (ListFilter, error) {
	var f ListFilter

	status := Status(strings.TrimSpace(r.Status))
	if status == "" {
		status = defaultStatus
	}
	if status != "" {
		if !status.Valid() {
			return f, NewInvalidFilterError("status", r.Status)
		}
		f.Status = &status
	}

	if id := strings.TrimSpace(r.AuthorID); id != "" {
		authorID, err := uuid.Parse(id)
		if err != nil {
			return f, NewInvalidFilterError("author_id", r.AuthorID)
		}
		f.AuthorID = &authorID
	}

	f.Tags = tagmodel.SplitFilter(r.Tags)
	return f, nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type TagSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PostResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Excerpt         *string        `json:"excerpt"`
	Status          Status         `json:"status"`
	PublicationDate *time.Time     `json:"publication_date"`
	AuthorID        uuid.UUID      `json:"author_id"`
	Author          *AuthorSummary `json:"author,omitempty"`
	Tags            []TagSummary   `json:"tags"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (p *Post) ToResponse() PostResponse {
	tags := make([]TagSummary, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, TagSummary{ID: t.ID, Name: t.Name})
	}

	return PostResponse{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		Status:          p.Status,
		PublicationDate: p.PublicationDate,
		AuthorID:        p.AuthorID,
		Author:          p.Author,
		Tags:            tags,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
