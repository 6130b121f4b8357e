package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postrepo "blog-backend/internal/domains/post/repository"
	"blog-backend/internal/domains/search/model"
	tagmodel "blog-backend/internal/domains/tag/model"
)

type postgresSearchRepository struct {
	pool *pgxpool.Pool
	cfg  Config
}

func NewPostgresRepository(pool *pgxpool.Pool, cfg Config) SearchRepository {
	if cfg.Language == "" {
		cfg.Language = "english"
	}
	if cfg.Weights == ([4]float64{}) {
		cfg.Weights = model.DefaultRankWeights
	}
	return &postgresSearchRepository{pool: pool, cfg: cfg}
}

func (r *postgresSearchRepository) Search(ctx context.Context, c model.Criteria) ([]model.Hit, int, error) {
	q := BuildSearchQuery(c, r.cfg)

	var total int
	if err := r.pool.QueryRow(ctx, q.CountSQL, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}
	if total == 0 {
		return []model.Hit{}, 0, nil
	}

	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Hit, error) {
		var rank *float64
		p, err := postrepo.ScanPost(row, &rank)
		if err != nil {
			return model.Hit{}, err
		}
		return model.Hit{Post: *p, Rank: rank}, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan search results: %w", err)
	}
	return hits, total, nil
}

func (r *postgresSearchRepository) PopularTags(ctx context.Context, limit int) ([]tagmodel.TagWithCount, error) {
	rows, err := r.pool.Query(ctx, popularTagsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tagmodel.TagWithCount, error) {
		var t tagmodel.TagWithCount
		err := row.Scan(&t.ID, &t.Name, &t.PostCount)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan popular tags: %w", err)
	}
	return tags, nil
}
