package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/infrastructure/database"
	pkgdb "blog-backend/pkg/database"
)

type postgresTagRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) TagRepository {
	return &postgresTagRepository{pool: pool}
}

const tagColumns = `id, name, created_at`

func scanTag(row pgx.Row) (*model.Tag, error) {
	var t model.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// =====================================================
// GET-OR-CREATE
// =====================================================

func (r *postgresTagRepository) ResolveWithTx(ctx context.Context, tx pgx.Tx, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := getOrCreate(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// getOrCreate: SELECT → INSERT trong savepoint → nếu unique violation (request khác vừa tạo)
// thì rollback savepoint và SELECT lại đúng một lần
func getOrCreate(ctx context.Context, tx pgx.Tx, name string) (*model.Tag, error) {
	tag, err := findByName(ctx, tx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find tag %q: %w", name, err)
	}

	tag, err = insertInSavepoint(ctx, tx, name)
	if err == nil {
		return tag, nil
	}
	if !database.IsUniqueViolation(err) {
		return nil, fmt.Errorf("insert tag %q: %w", name, err)
	}

	tag, err = findByName(ctx, tx, name)
	if err != nil {
		return nil, fmt.Errorf("refetch tag %q after concurrent insert: %w", name, err)
	}
	return tag, nil
}

func insertInSavepoint(ctx context.Context, tx pgx.Tx, name string) (*model.Tag, error) {
	// Begin trên pgx.Tx tạo SAVEPOINT, lỗi trong savepoint không abort transaction ngoài
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create savepoint: %w", err)
	}

	tag, err := scanTag(sp.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING `+tagColumns, name))
	if err != nil {
		_ = sp.Rollback(ctx)
		return nil, err
	}

	if err := sp.Commit(ctx); err != nil {
		return nil, fmt.Errorf("release savepoint: %w", err)
	}
	return tag, nil
}

func findByName(ctx context.Context, db pkgdb.DBTX, name string) (*model.Tag, error) {
	return scanTag(db.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = $1`, name))
}

// =====================================================
// READ
// =====================================================

func (r *postgresTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	tag, err := scanTag(r.pool.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTagNotFoundError()
		}
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return tag, nil
}

func (r *postgresTagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := findByName(ctx, r.pool, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTagNotFoundError()
		}
		return nil, fmt.Errorf("find tag by name: %w", err)
	}
	return tag, nil
}

func (r *postgresTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tag, error) {
		t, err := scanTag(row)
		if err != nil {
			return model.Tag{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	return tags, nil
}

func (r *postgresTagRepository) ListWithCounts(ctx context.Context) ([]model.TagWithCount, error) {
	query := `
		SELECT t.id, t.name, t.created_at, COUNT(p.id) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id AND p.status = 'published'
		GROUP BY t.id, t.name, t.created_at
		ORDER BY t.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags with counts: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TagWithCount, error) {
		var t model.TagWithCount
		err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.PostCount)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tags with counts: %w", err)
	}
	return tags, nil
}
