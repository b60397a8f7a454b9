package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepo(db)
	postRepo := mongo.NewPostRepo(mongoDB)
	categoryRepo := mongo.NewCategoryRepo(mongoDB)
	blacklist := redis.NewTokenBlacklist(redis.Rdb)
	mediaStore := redis.NewMediaTempStore(redis.Rdb)

	userService := service.NewUserService(userRepo, blacklist)
	postService := service.NewPostService(postRepo, categoryRepo, userRepo, mediaStore, postOptions(cfg.Post))
	categoryService := service.NewCategoryService(categoryRepo)

	handlers := &api.HandlersGroup{
		UserHandler:     handler.NewUserHandler(userService),
		PostHandler:     handler.NewPostHandler(postService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
		MediaHandler:    handler.NewMediaHandler(mediaStore),
	}

	router := api.SetupRouter(handlers, blacklist, cfg.Server.AllowedOrigins)

	auditJob := job.NewCategoryAuditJob(postRepo, categoryRepo)
	cleanupJob := job.NewMediaCleanupJob(mediaStore, minio.DeleteFile, cfg.Cron.MediaTTL)
	cronMgr := cron.NewCronManager(cfg.Cron, auditJob, cleanupJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}

func postOptions(cfg config.PostConfig) service.PostOptions {
	opts := service.DefaultPostOptions()
	if cfg.DefaultPageSize > 0 {
		opts.DefaultPageSize = cfg.DefaultPageSize
	}
	if cfg.SearchLimit > 0 {
		opts.SearchLimit = cfg.SearchLimit
	}
	if cfg.DefaultImage != "" {
		opts.DefaultImage = cfg.DefaultImage
	}
	return opts
}
