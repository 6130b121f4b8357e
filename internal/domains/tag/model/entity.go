package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tag là từ vựng dùng chung giữa các post, tạo lazily và không bao giờ bị xóa
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagWithCount là tag kèm số post published đang gắn tag
type TagWithCount struct {
	Tag
	PostCount int `json:"post_count"`
}

// Popular tags cache
const (
	PopularTagsCachePrefix  = "tags:popular:"
	PopularTagsCachePattern = PopularTagsCachePrefix + "*"
)

func PopularTagsCacheKey(limit int) string {
	return fmt.Sprintf("%s%d", PopularTagsCachePrefix, limit)
}
