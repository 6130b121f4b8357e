package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "tags_name_key"}

	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert tag: %w", pgErr)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: CodeCheckViolation}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsConstraintViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "post_tags_max_per_post"}

	assert.True(t, IsConstraintViolation(fmt.Errorf("wrap: %w", pgErr), CodeCheckViolation, "post_tags_max_per_post"))
	assert.False(t, IsConstraintViolation(pgErr, CodeCheckViolation, "posts_title_check"))
	assert.False(t, IsConstraintViolation(pgErr, CodeUniqueViolation, "post_tags_max_per_post"))
}

func TestUniqueConstraint(t *testing.T) {
	assert.Equal(t, "users_email_key", UniqueConstraint(&pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_email_key"}))
	assert.Equal(t, "", UniqueConstraint(&pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "x"}))
	assert.Equal(t, "", UniqueConstraint(errors.New("plain")))
}
