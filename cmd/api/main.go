package main

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger.InitLogger()

	if err := run(config.Cfg); err != nil {
		log.Error("Inkwell exited with error", "err", err)
		os.Exit(1)
	}
	log.Info("Inkwell exited successfully.")
}

// infra 外部依赖的连接，退出时按相反顺序关闭
type infra struct {
	db      *gorm.DB
	mongoDB *mongodriver.Database
}

func connect(cfg *config.Config) (*infra, error) {
	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	if err = redis.InitRedis(cfg.Redis); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	mongoDB, err := mongo.InitMongo(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	if err = minio.Init(); err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}
	return &infra{db: db, mongoDB: mongoDB}, nil
}

func (i *infra) close(ctx context.Context) {
	if err := i.mongoDB.Client().Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect failed", "err", err)
	}
	if redis.Rdb != nil {
		if err := redis.Rdb.Close(); err != nil {
			log.Error("Redis close failed", "err", err)
		}
	}
	if sqlDB, err := i.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			log.Error("MySQL close failed", "err", err)
		}
	}
}

func run(cfg *config.Config) error {
	deps, err := connect(cfg)
	if err != nil {
		return err
	}

	app, err := wire.BuildApplication(deps.db, deps.mongoDB, cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	if err = cron.InitCron(app.CronMgr); err != nil {
		return fmt.Errorf("start cron: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		app.CronMgr.Stop()
		deps.close(shutdownCtx)
		return nil
	})

	return g.Wait()
}
