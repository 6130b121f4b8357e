package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blog-backend/internal/domains/post/model"
	tagmodel "blog-backend/internal/domains/tag/model"
	"blog-backend/pkg/database"
)

// memStore là store in-memory có transaction: snapshot khi bắt đầu, restore khi fn lỗi
type memStore struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]model.Post
	tags     map[string]tagmodel.Tag
	postTags map[uuid.UUID][]uuid.UUID
	authors  map[uuid.UUID]string

	// failReplace buộc ReplaceTagsWithTx lỗi để kiểm tra rollback
	failReplace error
}

func newMemStore() *memStore {
	return &memStore{
		posts:    map[uuid.UUID]model.Post{},
		tags:     map[string]tagmodel.Tag{},
		postTags: map[uuid.UUID][]uuid.UUID{},
		authors:  map[uuid.UUID]string{},
	}
}

type snapshot struct {
	posts    map[uuid.UUID]model.Post
	tags     map[string]tagmodel.Tag
	postTags map[uuid.UUID][]uuid.UUID
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		posts:    make(map[uuid.UUID]model.Post, len(s.posts)),
		tags:     make(map[string]tagmodel.Tag, len(s.tags)),
		postTags: make(map[uuid.UUID][]uuid.UUID, len(s.postTags)),
	}
	for k, v := range s.posts {
		snap.posts[k] = v
	}
	for k, v := range s.tags {
		snap.tags[k] = v
	}
	for k, v := range s.postTags {
		snap.postTags[k] = append([]uuid.UUID(nil), v...)
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.posts, s.tags, s.postTags = snap.posts, snap.tags, snap.postTags
}

// WithinTransaction implement database.TxManager
func (s *memStore) WithinTransaction(ctx context.Context, fn database.TxFunc) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// ---- PostRepository ----

func (s *memStore) load(p model.Post) *model.Post {
	out := p
	out.Author = &model.AuthorSummary{ID: p.AuthorID, Username: s.authors[p.AuthorID]}
	out.Tags = nil
	for _, id := range s.postTags[p.ID] {
		for _, t := range s.tags {
			if t.ID == id {
				out.Tags = append(out.Tags, t)
			}
		}
	}
	sort.Slice(out.Tags, func(i, j int) bool { return out.Tags[i].Name < out.Tags[j].Name })
	return &out
}

func (s *memStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, model.NewPostNotFoundError()
	}
	return s.load(p), nil
}

func (s *memStore) hasTag(postID uuid.UUID, name string) bool {
	t, ok := s.tags[name]
	if !ok {
		return false
	}
	for _, id := range s.postTags[postID] {
		if id == t.ID {
			return true
		}
	}
	return false
}

func (s *memStore) List(ctx context.Context, f model.ListFilter) ([]model.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Post
	for _, p := range s.posts {
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}
		if f.TagID != nil {
			found := false
			for _, id := range s.postTags[p.ID] {
				found = found || id == *f.TagID
			}
			if !found {
				continue
			}
		}
		all := true
		for _, name := range f.Tags {
			all = all && s.hasTag(p.ID, name)
		}
		if !all {
			continue
		}
		matched = append(matched, *s.load(p))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if f.Offset >= total {
		return []model.Post{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (s *memStore) LockWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, model.NewPostNotFoundError()
	}
	return &p, nil
}

func (s *memStore) CreateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC().Add(time.Duration(len(s.posts)) * time.Millisecond)
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Author, stored.Tags = nil, nil
	s.posts[post.ID] = stored
	return nil
}

func (s *memStore) UpdateWithTx(ctx context.Context, tx pgx.Tx, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return model.NewPostNotFoundError()
	}
	stored := *post
	stored.Author, stored.Tags = nil, nil
	s.posts[post.ID] = stored
	return nil
}

func (s *memStore) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return model.NewPostNotFoundError()
	}
	delete(s.posts, id)
	delete(s.postTags, id)
	return nil
}

func (s *memStore) ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, postID uuid.UUID, tagIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReplace != nil {
		return s.failReplace
	}
	if len(tagIDs) > model.PostTagLimit.Limit {
		return tagmodel.NewTooManyTagsError(len(tagIDs))
	}
	s.postTags[postID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

// ---- TagRepository ----

type memTagRepo struct{ s *memStore }

func (r memTagRepo) ResolveWithTx(ctx context.Context, tx pgx.Tx, names []string) ([]tagmodel.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]tagmodel.Tag, 0, len(names))
	for _, n := range names {
		t, ok := r.s.tags[n]
		if !ok {
			t = tagmodel.Tag{ID: uuid.New(), Name: n, CreatedAt: time.Now()}
			r.s.tags[n] = t
		}
		out = append(out, t)
	}
	return out, nil
}

func (r memTagRepo) FindByID(ctx context.Context, id uuid.UUID) (*tagmodel.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.ID == id {
			tag := t
			return &tag, nil
		}
	}
	return nil, tagmodel.NewTagNotFoundError()
}

func (r memTagRepo) FindByName(ctx context.Context, name string) (*tagmodel.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tags[name]; ok {
		return &t, nil
	}
	return nil, tagmodel.NewTagNotFoundError()
}

func (r memTagRepo) List(ctx context.Context) ([]tagmodel.Tag, error) {
	return nil, errors.New("not used")
}

func (r memTagRepo) ListWithCounts(ctx context.Context) ([]tagmodel.TagWithCount, error) {
	return nil, errors.New("not used")
}

// recordingCache ghi lại các pattern bị invalidate
type recordingCache struct {
	mu       sync.Mutex
	patterns []string
	err      error
}

func (c *recordingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *recordingCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	return c.err
}

func (c *recordingCache) Ping(ctx context.Context) error { return nil }
