package database

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormDB 打开用户库连接。TranslateError 使唯一索引冲突返回 gorm.ErrDuplicatedKey
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	sqlLogger := logger.NewGormLogger()
	if cfg.SlowThreshold > 0 {
		sqlLogger.SlowThreshold = cfg.SlowThreshold
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         sqlLogger.LogMode(gormLogLevel(cfg.LogSQL)),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Info("MySQL connection established", "max_open", cfg.MaxOpen, "max_idle", cfg.MaxIdle)
	return db, nil
}

// gormLogLevel 开启 log_sql 时记录每条语句，否则只记录慢查询与错误
func gormLogLevel(logSQL bool) gormlogger.LogLevel {
	if logSQL {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
