package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post/model"
	tagmodel "blog-backend/internal/domains/tag/model"
)

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

// =====================================================
// READ
// =====================================================

func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + SelectColumns + ` ` + FromClause + ` WHERE p.id = $1`

	post, err := ScanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return post, nil
}

func (r *postgresPostRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Post, int, error) {
	cond := FilterConditions(filter)
	where := cond.Where()

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p ` + where
	if err := r.pool.QueryRow(ctx, countQuery, cond.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	if total == 0 {
		return []model.Post{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s %s %s
		ORDER BY p.publication_date DESC NULLS LAST, p.created_at DESC, p.id ASC
		LIMIT %s OFFSET %s`,
		SelectColumns, FromClause, where, cond.Arg(filter.Limit), cond.Arg(filter.Offset))

	rows, err := r.pool.Query(ctx, query, cond.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Post, error) {
		p, err := ScanPost(row)
		if err != nil {
			return model.Post{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan posts: %w", err)
	}
	return posts, total, nil
}

// =====================================================
// WRITE (trong transaction)
// =====================================================

const postColumns = `id, author_id, title, content, excerpt, status, publication_date, created_at, updated_at`

func (r *postgresPostRepository) LockWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Post, error) {
	var p model.Post
	err := tx.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Excerpt, &p.Status,
		&p.PublicationDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("lock post: %w", err)
	}
	return &p, nil
}

func (r *postgresPostRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, title, content, excerpt, status, publication_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		post.AuthorID, post.Title, post.Content, post.Excerpt, string(post.Status), post.PublicationDate,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postgresPostRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, excerpt = $4, status = $5,
		    publication_date = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		post.ID, post.Title, post.Content, post.Excerpt, string(post.Status),
		post.PublicationDate, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewPostNotFoundError()
	}
	return nil
}

// DeleteWithTx: post_tags cascade theo FK, tags giữ nguyên
func (r *postgresPostRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewPostNotFoundError()
	}
	return nil
}

func (r *postgresPostRepository) ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID)
		if err != nil {
			if model.IsTagLimitViolation(err) {
				return tagmodel.NewTooManyTagsError(len(tagIDs))
			}
			return fmt.Errorf("attach tag %s: %w", tagID, err)
		}
	}
	return nil
}
