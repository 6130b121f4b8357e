package repository

import (
	"fmt"

	"github.com/lib/pq"

	postrepo "blog-backend/internal/domains/post/repository"
	"blog-backend/internal/domains/search/model"
)

// Config cấu hình text search của Postgres
type Config struct {
	Language string
	Weights  [4]float64
}

// Query là cặp câu SQL đã dựng cho một lần search
type Query struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any
}

// BuildSearchQuery dựng câu search và câu count trên cùng một predicate
//   - luôn chỉ lấy post published
//   - có query → search_vector @@ websearch_to_tsquery, rank bằng ts_rank
//   - tags → post phải mang đủ mọi tag
func BuildSearchQuery(c model.Criteria, cfg Config) Query {
	cond := &postrepo.Conditions{}
	cond.Add("p.status = 'published'")

	var tsQuery string
	if c.HasQuery() {
		tsQuery = fmt.Sprintf("websearch_to_tsquery(%s::regconfig, %s)", cond.Arg(cfg.Language), cond.Arg(c.Query))
		cond.Add("p.search_vector @@ " + tsQuery)
	}
	if c.AuthorID != nil {
		cond.Add("p.author_id = " + cond.Arg(*c.AuthorID))
	}
	cond.AddTagSuperset(c.Tags)

	// Câu count chỉ dùng tham số của predicate
	where := cond.Where()
	countArgs := append([]any(nil), cond.Args()...)

	rankExpr := "NULL::real"
	if c.HasQuery() {
		rankExpr = fmt.Sprintf("ts_rank(%s::float4[], p.search_vector, %s)", cond.Arg(pq.Array(cfg.Weights[:])), tsQuery)
	}

	orderBy := "p.publication_date DESC NULLS LAST, p.id ASC"
	if c.RankByRelevance() {
		orderBy = "rank DESC, p.id ASC"
	}

	sql := fmt.Sprintf(`SELECT %s, %s AS rank
		%s
		%s
		ORDER BY %s
		LIMIT %s OFFSET %s`,
		postrepo.SelectColumns, rankExpr, postrepo.FromClause, where, orderBy,
		cond.Arg(c.Limit), cond.Arg(c.Offset))

	return Query{
		SQL:       sql,
		Args:      cond.Args(),
		CountSQL:  "SELECT COUNT(*) FROM posts p " + where,
		CountArgs: countArgs,
	}
}

const popularTagsQuery = `
	SELECT t.id, t.name, COUNT(*) AS post_count
	FROM tags t
	JOIN post_tags pt ON pt.tag_id = t.id
	JOIN posts p ON p.id = pt.post_id AND p.status = 'published'
	GROUP BY t.id, t.name
	ORDER BY post_count DESC, t.name ASC
	LIMIT $1
`
