package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX là phần chung của pool, conn và tx
// Repository nhận DBTX để chạy được cả trong lẫn ngoài transaction
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxFunc là function được execute trong transaction
type TxFunc func(pgx.Tx) error

// Beginner là nguồn mở transaction (pgxpool.Pool, pgx.Conn, pgx.Tx)
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTransaction chạy fn trong transaction
// fn trả lỗi hoặc panic → rollback, còn lại → commit
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		} else if err != nil {
			// Context có thể đã bị cancel, rollback bằng background context
			_ = tx.Rollback(context.Background())
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransactionResult giống WithTransaction nhưng có giá trị trả về
func WithTransactionResult[T any](ctx context.Context, db Beginner, fn func(pgx.Tx) (T, error)) (T, error) {
	var result T

	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// TxManager để service layer mở transaction mà không phụ thuộc trực tiếp vào pool
type TxManager interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

type poolTxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &poolTxManager{pool: pool}
}

func (m *poolTxManager) WithinTransaction(ctx context.Context, fn TxFunc) error {
	return WithTransaction(ctx, m.pool, fn)
}
