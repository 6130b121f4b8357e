package model

import (
	"time"

	"github.com/google/uuid"

	tagmodel "blog-backend/internal/domains/tag/model"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// AuthorSummary là phần thông tin author trả kèm post
type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName *string   `json:"full_name,omitempty"`
}

// Post ánh xạ bảng posts
// Author và Tags chỉ có giá trị khi load qua query đầy đủ (JOIN users + LATERAL tags)
type Post struct {
	ID              uuid.UUID
	AuthorID        uuid.UUID
	Title           string
	Content         string
	Excerpt         *string
	Status          Status
	PublicationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Author *AuthorSummary
	Tags   []tagmodel.Tag
}

// SetStatus đổi trạng thái, publication_date chỉ được đóng dấu khi
// chuyển từ trạng thái khác sang published và không bao giờ bị xóa
func (p *Post) SetStatus(next Status, now time.Time) {
	if next == StatusPublished && p.Status != StatusPublished {
		ts := now
		p.PublicationDate = &ts
	}
	p.Status = next
}

func (p *Post) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		names[i] = t.Name
	}
	return names
}
