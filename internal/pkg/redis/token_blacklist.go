package redis

import (
	"Inkwell/internal/pkg/consts"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 以 Token 签名为 key 记录已注销的 Token，key 随 Token 过期
type TokenBlacklist struct {
	rdb *redis.Client
}

// NewTokenBlacklist client 为空时使用全局连接
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	if client == nil {
		client = Rdb
	}
	return &TokenBlacklist{rdb: client}
}

func (s *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, consts.TokenBlacklistKey+signature, 1, ttl).Err()
}

func (s *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	n, err := s.rdb.Exists(ctx, consts.TokenBlacklistKey+signature).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
