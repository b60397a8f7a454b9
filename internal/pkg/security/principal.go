package security

import "Inkwell/internal/pkg/consts"

// Principal 当前请求的操作者
type Principal struct {
	ID   uint64
	Role string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == consts.RoleAdmin
}
