package cron

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	cfg              config.CronConfig
	categoryAuditJob *job.CategoryAuditJob
	mediaCleanupJob  *job.MediaCleanupJob
}

func NewCronManager(cfg config.CronConfig, categoryAuditJob *job.CategoryAuditJob, mediaCleanupJob *job.MediaCleanupJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		cfg:              cfg,
		categoryAuditJob: categoryAuditJob,
		mediaCleanupJob:  mediaCleanupJob,
	}
}

// RegisterJobs 注册定时任务，未配置表达式时使用默认值
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		name string
		expr string
		def  string
		job  cron.Job
	}{
		{"category_audit", s.cfg.CategoryAudit, "@daily", s.categoryAuditJob},
		{"media_cleanup", s.cfg.MediaCleanup, "@hourly", s.mediaCleanupJob},
	}

	for _, j := range jobs {
		expr := j.expr
		if expr == "" {
			expr = j.def
		}
		if _, err := s.engine.AddJob(expr, j.job); err != nil {
			return err
		}
		log.Info("Cron job registered", "job", j.name, "schedule", expr)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
