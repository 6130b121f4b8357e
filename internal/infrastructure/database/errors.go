package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	CodeUniqueViolation     = "23505"
	CodeCheckViolation      = "23514"
	CodeForeignKeyViolation = "23503"
)

// PgError trả về *pgconn.PgError nếu err (hoặc lỗi nó wrap) là lỗi từ PostgreSQL
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == CodeUniqueViolation
}

// IsConstraintViolation kiểm tra err là vi phạm constraint có tên cho trước
// Áp dụng cho cả constraint khai báo và lỗi RAISE ... USING CONSTRAINT từ trigger
func IsConstraintViolation(err error, code, constraint string) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == code && pgErr.ConstraintName == constraint
}

// UniqueConstraint trả về tên constraint bị vi phạm, rỗng nếu không phải unique violation
func UniqueConstraint(err error) string {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != CodeUniqueViolation {
		return ""
	}
	return pgErr.ConstraintName
}
