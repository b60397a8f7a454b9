package mock

import (
	"Inkwell/internal/model"
	repo "Inkwell/internal/pkg/mongo"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRepo 内存实现，name 与 slug 唯一
type CategoryRepo struct {
	mutex      sync.RWMutex
	categories map[primitive.ObjectID]*model.Category
}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{
		categories: make(map[primitive.ObjectID]*model.Category),
	}
}

var _ repo.CategoryRepo = (*CategoryRepo)(nil)

func (m *CategoryRepo) CreateCategory(_ context.Context, category *model.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.conflicts(primitive.NilObjectID, category.Name, category.Slug) {
		return repo.ErrDuplicate
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	c := *category
	m.categories[c.ID] = &c
	return nil
}

func (m *CategoryRepo) conflicts(self primitive.ObjectID, name, slug string) bool {
	for id, c := range m.categories {
		if id == self {
			continue
		}
		if c.Name == name || c.Slug == slug {
			return true
		}
	}
	return false
}

func (m *CategoryRepo) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if c, ok := m.categories[oid]; ok {
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (m *CategoryRepo) GetCategoryBySlug(_ context.Context, slug string) (*model.Category, error) {
	return m.findFirst(func(c *model.Category) bool { return c.Slug == slug }), nil
}

func (m *CategoryRepo) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	return m.findFirst(func(c *model.Category) bool { return c.Name == name }), nil
}

func (m *CategoryRepo) findFirst(match func(*model.Category) bool) *model.Category {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, c := range m.categories {
		if match(c) {
			out := *c
			return &out
		}
	}
	return nil
}

func (m *CategoryRepo) GetCategoriesByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make([]*model.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *CategoryRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	m.mutex.RLock()
	out := make([]*model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	m.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *CategoryRepo) UpdateCategory(_ context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	c, ok := m.categories[oid]
	if !ok {
		return nil, nil
	}

	next := *c
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Slug != nil {
		next.Slug = *patch.Slug
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if m.conflicts(oid, next.Name, next.Slug) {
		return nil, repo.ErrDuplicate
	}
	next.UpdatedAt = time.Now()
	m.categories[oid] = &next

	out := next
	return &out, nil
}

func (m *CategoryRepo) DeleteCategory(_ context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.categories[oid]; !ok {
		return false, nil
	}
	delete(m.categories, oid)
	return true, nil
}
