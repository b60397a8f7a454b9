package job

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PendingMedia 待认领配图的存储
type PendingMedia interface {
	Pending(ctx context.Context) (map[string]*dto.MediaTempMetadata, error)
	Untrack(ctx context.Context, fileKey string) error
}

// MediaCleanupJob 删除上传后超过 ttl 仍未被任何文章引用的配图
type MediaCleanupJob struct {
	pending PendingMedia
	remove  func(ctx context.Context, fileKey string) error
	ttl     time.Duration
	now     func() time.Time
}

func NewMediaCleanupJob(pending PendingMedia, remove func(ctx context.Context, fileKey string) error, ttl time.Duration) *MediaCleanupJob {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MediaCleanupJob{
		pending: pending,
		remove:  remove,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-media-cleanup-"+uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	cleaned, err := s.Cleanup(ctx)
	if err != nil {
		log.ErrorContext(ctx, "media cleanup failed", "err", err)
		return
	}
	if cleaned > 0 {
		log.InfoContext(ctx, "media cleanup job finished", "cleaned_count", cleaned)
	}
}

// Cleanup 返回删除的文件数。单个文件失败不影响其余文件
func (s *MediaCleanupJob) Cleanup(ctx context.Context) (int, error) {
	all, err := s.pending.Pending(ctx)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(-s.ttl).Unix()
	count := 0
	for fileKey, meta := range all {
		if meta.CreatedAt > deadline {
			continue
		}
		if err = s.remove(ctx, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to delete expired file from minio", "fileKey", fileKey, "err", err)
			continue
		}
		if err = s.pending.Untrack(ctx, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to untrack media key", "fileKey", fileKey, "err", err)
		}
		count++
		log.InfoContext(ctx, "cleanup expired media resource", "fileKey", fileKey, "mime", meta.MimeType)
	}
	return count, nil
}
