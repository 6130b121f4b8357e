package pagination

import (
	"fmt"
	"math"
	"strconv"

	"blog-backend/internal/shared/apperror"
)

const ErrCodeInvalidPagination = "PAG001"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params là tham số phân trang nhận từ query string
type Params struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize áp default cho giá trị bị bỏ trống (0)
// Không clamp giá trị âm: validation ở handler đã chặn trước
func (p Params) Normalize() Params {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Valid kiểm tra page >= 1 và 1 <= page_size <= MaxPageSize
func (p Params) Valid() bool {
	return p.Page >= 1 && p.PageSize >= 1 && p.PageSize <= MaxPageSize
}

// Offset = (page-1) * pageSize
func (p Params) Offset() int {
	offset, _ := Paginate(0, p.Page, p.PageSize)
	return offset
}

// Paginate tính offset và tổng số trang
// page < 1 được coi như trang 1, pageSize <= 0 cho totalPages = 0
// offset không bao giờ âm
func Paginate(total, page, pageSize int) (offset int, totalPages int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return 0, 0
	}

	// page quá lớn: giữ offset ở math.MaxInt thay vì overflow ra số âm
	if page-1 > math.MaxInt/pageSize {
		offset = math.MaxInt
	} else {
		offset = (page - 1) * pageSize
	}
	totalPages = (total + pageSize - 1) / pageSize
	return offset, totalPages
}

// Page là kết quả phân trang generic
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage đóng gói items và metadata, Items luôn khác nil để JSON ra []
func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	_, totalPages := Paginate(total, p.Page, p.PageSize)
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}
}

// Map chuyển Page[T] sang Page[U], giữ nguyên metadata
func Map[T, U any](in Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, fn(item))
	}
	return Page[U]{
		Items:      out,
		Total:      in.Total,
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalPages: in.TotalPages,
	}
}

// Parse đọc page/page_size từ query string
// Bỏ trống → default, sai kiểu hoặc ngoài khoảng → validation error (400)
func Parse(page, pageSize string) (Params, error) {
	p := Params{Page: DefaultPage, PageSize: DefaultPageSize}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return p, apperror.Validation(ErrCodeInvalidPagination, "Invalid pagination").
				WithField("page", "must be an integer >= 1")
		}
		p.Page = n
	}

	if pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil || n < 1 || n > MaxPageSize {
			return p, apperror.Validation(ErrCodeInvalidPagination, "Invalid pagination").
				WithField("page_size", fmt.Sprintf("must be an integer between 1 and %d", MaxPageSize))
		}
		p.PageSize = n
	}

	return p, nil
}
