package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryAuditJob 找出被文章引用但已被删除的分类，只记录不修改
type CategoryAuditJob struct {
	postRepo     mongo.PostRepo
	categoryRepo mongo.CategoryRepo
}

func NewCategoryAuditJob(postRepo mongo.PostRepo, categoryRepo mongo.CategoryRepo) *CategoryAuditJob {
	return &CategoryAuditJob{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryAuditJob) Run() {
	traceID := "job-category-audit-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	dangling, err := s.FindDangling(ctx)
	if err != nil {
		log.ErrorContext(ctx, "category audit failed", "err", err)
		return
	}

	if len(dangling) == 0 {
		log.InfoContext(ctx, "CategoryAuditJob finished, no dangling references")
		return
	}

	ids := make([]string, 0, len(dangling))
	for _, id := range dangling {
		ids = append(ids, id.Hex())
	}
	log.WarnContext(ctx, "posts reference deleted categories", "count", len(ids), "category_ids", ids)
}

// FindDangling 返回不存在的分类 ID
func (s *CategoryAuditJob) FindDangling(ctx context.Context) ([]primitive.ObjectID, error) {
	referenced, err := s.postRepo.GetReferencedCategoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetCategoriesByIDs(ctx, referenced)
	if err != nil {
		return nil, err
	}
	found := make(map[primitive.ObjectID]struct{}, len(existing))
	for _, c := range existing {
		found[c.ID] = struct{}{}
	}

	dangling := make([]primitive.ObjectID, 0)
	for _, id := range referenced {
		if _, ok := found[id]; !ok {
			dangling = append(dangling, id)
		}
	}
	return dangling, nil
}
