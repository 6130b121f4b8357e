package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"blog-backend/internal/domains/post/model"
	tagmodel "blog-backend/internal/domains/tag/model"
)

// SelectColumns chọn post + author summary + tags (json) theo thứ tự ScanPost đọc
const SelectColumns = `p.id, p.author_id, p.title, p.content, p.excerpt, p.status,
	p.publication_date, p.created_at, p.updated_at,
	u.username, u.full_name,
	COALESCE(tg.tags, '[]'::json)`

// FromClause: author JOIN và tags LATERAL trong cùng một query, không N+1
const FromClause = `FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN LATERAL (
		SELECT json_agg(json_build_object('id', t.id, 'name', t.name, 'created_at', t.created_at)
		                ORDER BY t.name) AS tags
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = p.id
	) tg ON TRUE`

type scanner interface {
	Scan(dest ...any) error
}

// ScanPost đọc một dòng SelectColumns, extra là các cột thêm phía sau (vd: rank)
func ScanPost(row scanner, extra ...any) (*model.Post, error) {
	var (
		p        model.Post
		author   model.AuthorSummary
		tagsJSON []byte
	)

	dest := []any{
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Excerpt, &p.Status,
		&p.PublicationDate, &p.CreatedAt, &p.UpdatedAt,
		&author.Username, &author.FullName,
		&tagsJSON,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var tags []tagmodel.Tag
	if err := json.Unmarshal(tagsJSON, &tags); err != nil {
		return nil, fmt.Errorf("decode post tags: %w", err)
	}

	author.ID = p.AuthorID
	p.Author = &author
	p.Tags = tags
	return &p, nil
}

// Conditions gom các điều kiện WHERE và placeholder $n tương ứng
type Conditions struct {
	clauses []string
	args    []any
}

// Arg thêm tham số và trả về placeholder của nó
func (c *Conditions) Arg(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *Conditions) Add(clause string) {
	c.clauses = append(c.clauses, clause)
}

func (c *Conditions) Args() []any {
	return c.args
}

// Where trả về "WHERE a AND b", rỗng nếu không có điều kiện
func (c *Conditions) Where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.clauses, " AND ")
}

// AddTagSuperset: post phải mang đủ mọi tag trong names (AND, không phải OR)
func (c *Conditions) AddTagSuperset(names []string) {
	if len(names) == 0 {
		return
	}
	c.Add(fmt.Sprintf(`p.id IN (
		SELECT pt.post_id FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE t.name = ANY(%s)
		GROUP BY pt.post_id
		HAVING COUNT(DISTINCT t.name) = %s)`,
		c.Arg(pq.Array(names)), c.Arg(len(names))))
}

// FilterConditions dựng điều kiện cho model.ListFilter
func FilterConditions(f model.ListFilter) *Conditions {
	c := &Conditions{}
	if f.Status != nil {
		c.Add("p.status = " + c.Arg(string(*f.Status)))
	}
	if f.AuthorID != nil {
		c.Add("p.author_id = " + c.Arg(*f.AuthorID))
	}
	if f.TagID != nil {
		c.Add("EXISTS (SELECT 1 FROM post_tags x WHERE x.post_id = p.id AND x.tag_id = " + c.Arg(*f.TagID) + ")")
	}
	c.AddTagSuperset(f.Tags)
	return c
}
