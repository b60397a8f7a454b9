package mock

import (
	"Inkwell/internal/model"
	repo "Inkwell/internal/pkg/mongo"
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postRecord 每条记录一把锁，浏览量和评论的修改在记录内串行
type postRecord struct {
	mu   sync.Mutex
	post model.Post
}

// PostRepo 内存实现，用于测试
type PostRepo struct {
	mutex   sync.RWMutex
	records map[primitive.ObjectID]*postRecord
	slugs   map[string]primitive.ObjectID
	titles  map[string]primitive.ObjectID
}

func NewPostRepo() *PostRepo {
	return &PostRepo{
		records: make(map[primitive.ObjectID]*postRecord),
		slugs:   make(map[string]primitive.ObjectID),
		titles:  make(map[string]primitive.ObjectID),
	}
}

var _ repo.PostRepo = (*PostRepo)(nil)

func (m *PostRepo) CreatePost(_ context.Context, post *model.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.slugs[post.Slug]; exists {
		return repo.ErrDuplicate
	}
	if _, exists := m.titles[post.Title]; exists {
		return repo.ErrDuplicate
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	m.records[post.ID] = &postRecord{post: clonePost(post)}
	m.slugs[post.Slug] = post.ID
	m.titles[post.Title] = post.ID
	return nil
}

func (m *PostRepo) record(id string) *postRecord {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.records[oid]
}

func (m *PostRepo) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	rec := m.record(id)
	if rec == nil {
		return nil, nil
	}
	return rec.snapshot(), nil
}

func (m *PostRepo) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	m.mutex.RLock()
	oid, ok := m.slugs[slug]
	m.mutex.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.GetPostByID(ctx, oid.Hex())
}

func (m *PostRepo) ListPosts(_ context.Context, filter model.PostFilter, offset, limit int64) ([]*model.Post, error) {
	matched := m.filter(matchFilter(filter))

	if offset >= int64(len(matched)) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[offset:end], nil
}

func (m *PostRepo) CountPosts(_ context.Context, filter model.PostFilter) (int64, error) {
	return int64(len(m.filter(matchFilter(filter)))), nil
}

func matchFilter(filter model.PostFilter) func(*model.Post) bool {
	return func(p *model.Post) bool {
		if filter.PublishedOnly && !p.IsPublished {
			return false
		}
		return filter.CategoryID == nil || p.CategoryID == *filter.CategoryID
	}
}

func (m *PostRepo) SearchPosts(_ context.Context, query string, limit int64) ([]*model.Post, error) {
	q := strings.ToLower(query)
	matched := m.filter(func(p *model.Post) bool {
		if !p.IsPublished {
			return false
		}
		return strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q)
	})
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *PostRepo) UpdatePost(_ context.Context, id string, patch *model.PostPatch) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	// 锁顺序：先表锁再记录锁
	m.mutex.Lock()
	defer m.mutex.Unlock()
	rec, ok := m.records[oid]
	if !ok {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	p := &rec.post
	if patch.Title != nil && *patch.Title != p.Title {
		if _, exists := m.titles[*patch.Title]; exists {
			return nil, repo.ErrDuplicate
		}
		delete(m.titles, p.Title)
		m.titles[*patch.Title] = oid
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), *patch.Tags...)
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = *patch.FeaturedImage
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	p.UpdatedAt = time.Now()
	out := clonePost(p)
	return &out, nil
}

func (m *PostRepo) DeletePost(_ context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	rec, ok := m.records[oid]
	if !ok {
		return false, nil
	}
	rec.mu.Lock()
	delete(m.slugs, rec.post.Slug)
	delete(m.titles, rec.post.Title)
	rec.mu.Unlock()
	delete(m.records, oid)
	return true, nil
}

func (m *PostRepo) AppendComment(_ context.Context, id string, comment *model.Comment) (*model.Post, error) {
	rec := m.record(id)
	if rec == nil {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.post.Comments = append(rec.post.Comments, *comment)
	rec.post.UpdatedAt = time.Now()
	out := clonePost(&rec.post)
	return &out, nil
}

func (m *PostRepo) IncrementViewCount(_ context.Context, id string) (*model.Post, error) {
	rec := m.record(id)
	if rec == nil {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.post.ViewCount++
	out := clonePost(&rec.post)
	return &out, nil
}

func (m *PostRepo) GetReferencedCategoryIDs(_ context.Context) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0)
	for _, p := range m.filter(func(*model.Post) bool { return true }) {
		if p.CategoryID.IsZero() {
			continue
		}
		if _, ok := seen[p.CategoryID]; !ok {
			seen[p.CategoryID] = struct{}{}
			ids = append(ids, p.CategoryID)
		}
	}
	return ids, nil
}

// filter 返回按 created_at 倒序、_id 倒序排列的快照
func (m *PostRepo) filter(match func(*model.Post) bool) []*model.Post {
	m.mutex.RLock()
	records := make([]*postRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	m.mutex.RUnlock()

	out := make([]*model.Post, 0, len(records))
	for _, rec := range records {
		p := rec.snapshot()
		if match(p) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) > 0
	})
	return out
}

func (r *postRecord) snapshot() *model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := clonePost(&r.post)
	return &out
}

func clonePost(p *model.Post) model.Post {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	out.Comments = append([]model.Comment(nil), p.Comments...)
	return out
}
