package model

import (
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/infrastructure/database"
)

// PostTagLimit khớp với trigger enforce_post_tag_limit (migration 000004)
var PostTagLimit = struct {
	Limit      int
	Constraint string
}{
	Limit:      tagmodel.MaxTagsPerPost,
	Constraint: "post_tags_max_per_post",
}

// IsTagLimitViolation nhận diện lỗi check_violation do trigger raise khi insert tag thứ 11
func IsTagLimitViolation(err error) bool {
	return database.IsConstraintViolation(err, database.CodeCheckViolation, PostTagLimit.Constraint)
}
