package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared/apperror"
)

func TestNormalizeNames(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{name: "nil input", raw: nil, want: []string{}},
		{name: "lowercase and trim", raw: []string{"  Go ", "WEB-Dev"}, want: []string{"go", "web-dev"}},
		{name: "dedup keeps first seen order", raw: []string{"Go", "web", "go", "GO ", "api"}, want: []string{"go", "web", "api"}},
		{name: "exactly ten distinct", raw: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, want: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}},
		{name: "fifty characters accepted", raw: []string{strings.Repeat("x", 50)}, want: []string{strings.Repeat("x", 50)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNames(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeNames_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		wantCode string
	}{
		{name: "eleven raw entries", raw: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, wantCode: ErrCodeTooManyTags},
		{name: "eleven raw entries that dedup to one", raw: []string{"go", "go", "go", "go", "go", "go", "go", "go", "go", "go", "go"}, wantCode: ErrCodeTooManyTags},
		{name: "whitespace only", raw: []string{"go", "   "}, wantCode: ErrCodeInvalidTagName},
		{name: "too long", raw: []string{strings.Repeat("x", 51)}, wantCode: ErrCodeInvalidTagName},
		{name: "underscore rejected", raw: []string{"web_dev"}, wantCode: ErrCodeInvalidTagName},
		{name: "inner space rejected", raw: []string{"web dev"}, wantCode: ErrCodeInvalidTagName},
		{name: "non ascii rejected", raw: []string{"café"}, wantCode: ErrCodeInvalidTagName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNames(tt.raw)
			require.Error(t, err)
			assert.Nil(t, got)

			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Contains(t, appErr.Fields, "tags")
		})
	}
}

func TestNormalizeNames_Idempotent(t *testing.T) {
	first, err := NormalizeNames([]string{" Rust", "go", "RUST", "web-3"})
	require.NoError(t, err)

	second, err := NormalizeNames(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeFilter(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, NormalizeFilter([]string{" Go", "", "web", "GO"}))
	assert.Equal(t, []string{}, NormalizeFilter(nil))
}

func TestSplitFilter(t *testing.T) {
	assert.Equal(t, []string{"go", "web", "api"}, SplitFilter([]string{"go,Web", "api,,go"}))
}

func TestPopularTagsCacheKey(t *testing.T) {
	assert.Equal(t, "tags:popular:20", PopularTagsCacheKey(20))
	assert.True(t, strings.HasPrefix(PopularTagsCacheKey(5), strings.TrimSuffix(PopularTagsCachePattern, "*")))
}
