package cron

import log "log/slog"

// InitCron 注册并启动定时任务；开启 audit_on_start 时立即异步执行一次分类巡检
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()

	if mgr.cfg.AuditOnStart {
		log.Info("Running category audit on startup")
		go mgr.categoryAuditJob.Run()
	}
	return nil
}
