package model

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxTagsPerPost = 10
	MaxTagLength   = 50

	DefaultPopularLimit = 20
	MaxPopularLimit     = 100
)

// NormalizeNames chuẩn hóa danh sách tag gửi lên khi tạo/sửa post
//  1. Quá MaxTagsPerPost phần tử (đếm trước khi dedup) → validation error
//  2. Lowercase + trim
//  3. Dedup, giữ thứ tự xuất hiện đầu tiên
//  4. Tag rỗng, dài hơn MaxTagLength hoặc có ký tự ngoài [a-z0-9-] → validation error
func NormalizeNames(raw []string) ([]string, error) {
	if len(raw) > MaxTagsPerPost {
		return nil, NewTooManyTagsError(len(raw))
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))

	for _, r := range raw {
		name := strings.ToLower(strings.TrimSpace(r))
		if _, dup := seen[name]; dup {
			continue
		}

		if err := validateName(name); err != nil {
			return nil, err
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}

// NormalizeFilter chuẩn hóa tag dùng làm bộ lọc search/list
// Không bao giờ lỗi: tag rỗng bị bỏ, tag không hợp lệ giữ nguyên (sẽ không match gì)
func NormalizeFilter(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))

	for _, r := range raw {
		name := strings.ToLower(strings.TrimSpace(r))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// SplitFilter tách query param dạng "go,web" hoặc nhiều tham số ?tags=go&tags=web
func SplitFilter(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return NormalizeFilter(out)
}

func validateName(name string) error {
	if name == "" {
		return NewInvalidTagNameError(name, "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxTagLength {
		return NewInvalidTagNameError(name, "exceeds 50 characters")
	}
	for _, c := range name {
		if !isTagRune(c) {
			return NewInvalidTagNameError(name, "may only contain a-z, 0-9 and hyphens")
		}
	}
	return nil
}

func isTagRune(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}
