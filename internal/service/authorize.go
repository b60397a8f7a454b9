package service

import (
	"Inkwell/internal/pkg/security"
	"context"
)

// Owned 拥有单一所有者的资源
type Owned interface {
	OwnerID() uint64
}

// CanMutate 所有者或管理员可以修改
func CanMutate(principal *security.Principal, resource Owned) bool {
	if principal == nil {
		return false
	}
	return principal.ID == resource.OwnerID() || principal.IsAdmin()
}

// Authorize 加载目标资源并校验权限。资源不存在时先返回 notFound，不暴露权限判断结果
func Authorize[T any, PT interface {
	*T
	Owned
}](ctx context.Context, principal *security.Principal, load func(context.Context) (PT, error), notFound error) (PT, error) {
	resource, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, notFound
	}
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if !CanMutate(principal, resource) {
		return nil, ErrForbidden
	}
	return resource, nil
}
