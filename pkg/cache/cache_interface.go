package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key match glob pattern (vd: tags:popular:*)
	DeletePattern(ctx context.Context, pattern string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}

// Noop là Cache không lưu gì, dùng khi Redis không khả dụng hoặc trong test
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (Noop) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (Noop) Ping(ctx context.Context) error {
	return nil
}
