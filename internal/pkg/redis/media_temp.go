package redis

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// MediaTempStore 记录上传后尚未被文章引用的配图，hash field 为对象 key
type MediaTempStore struct {
	rdb *redis.Client
}

// NewMediaTempStore client 为空时使用全局连接
func NewMediaTempStore(client *redis.Client) *MediaTempStore {
	if client == nil {
		client = Rdb
	}
	return &MediaTempStore{rdb: client}
}

func (s *MediaTempStore) Track(ctx context.Context, fileKey string, meta *dto.MediaTempMetadata) error {
	value, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, consts.MediaTempKey, fileKey, value).Err()
}

// Untrack 配图已被文章引用或已删除，不再参与清理
func (s *MediaTempStore) Untrack(ctx context.Context, fileKey string) error {
	return s.rdb.HDel(ctx, consts.MediaTempKey, fileKey).Err()
}

// Pending 返回全部待认领配图，格式错误的条目跳过
func (s *MediaTempStore) Pending(ctx context.Context) (map[string]*dto.MediaTempMetadata, error) {
	all, err := s.rdb.HGetAll(ctx, consts.MediaTempKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]*dto.MediaTempMetadata, len(all))
	for fileKey, raw := range all {
		meta := &dto.MediaTempMetadata{}
		if err = json.Unmarshal([]byte(raw), meta); err != nil {
			log.WarnContext(ctx, "invalid media meta format", "fileKey", fileKey)
			continue
		}
		out[fileKey] = meta
	}
	return out, nil
}
