package config

import "time"

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Cron   CronConfig   `mapstructure:"cron"`
	Post   PostConfig   `mapstructure:"post"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig 日志配置，LogstashAddress 为空时只输出到 stdout
type LogConfig struct {
	Level           string `mapstructure:"level"`
	LogstashAddress string `mapstructure:"logstash_address"`
	Index           string `mapstructure:"index"`
	Token           string `mapstructure:"token"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN           string        `mapstructure:"dsn"`
	MaxIdle       int           `mapstructure:"max_idle"`
	MaxOpen       int           `mapstructure:"max_open"`
	MaxLifetime   int           `mapstructure:"max_lifetime"`
	LogSQL        bool          `mapstructure:"log_sql"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL            string        `mapstructure:"url"`
	Database       string        `mapstructure:"database"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Bucket     string `mapstructure:"bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	PublicBase string `mapstructure:"public_base"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
	Issuer      string `mapstructure:"issuer"`
}

// CronConfig 定时任务配置
type CronConfig struct {
	CategoryAudit string        `mapstructure:"category_audit"`
	AuditOnStart  bool          `mapstructure:"audit_on_start"`
	MediaCleanup  string        `mapstructure:"media_cleanup"`
	MediaTTL      time.Duration `mapstructure:"media_ttl"` // 上传后多久未被引用即删除
}

type PostConfig struct {
	DefaultPageSize int    `mapstructure:"default_page_size"`
	SearchLimit     int    `mapstructure:"search_limit"`
	DefaultImage    string `mapstructure:"default_image"`
}
