package service

import "context"

// Resolver 按 id 或 slug 定位实体，主键优先
type Resolver[T any] struct {
	ByID   func(ctx context.Context, id string) (*T, error)
	BySlug func(ctx context.Context, slug string) (*T, error)
}

// Resolve 先按主键查找，未命中再按 slug 查找，都未命中返回 nil, nil
func (r Resolver[T]) Resolve(ctx context.Context, token string) (*T, error) {
	if token == "" {
		return nil, nil
	}

	entity, err := r.ByID(ctx, token)
	if err != nil || entity != nil {
		return entity, err
	}

	return r.BySlug(ctx, token)
}
