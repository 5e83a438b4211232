package config

import (
	"fmt"
	"os"
	"strconv"
)

// 存储后端类型
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int

	// 键值表名（key TEXT PRIMARY KEY, value TEXT）
	Table string
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// 键前缀（多个环境共用一个 Redis 时使用），默认为空
	KeyPrefix string
}

// Config 日誌聚合配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	Store struct {
		// 选项：memory（内存，可从快照加载）、redis、postgres
		Backend string

		// 内存后端的快照文件（localStorage 导出的 JSON 对象）
		SnapshotPath string
	}

	// 日誌相关的固定键
	Keys struct {
		Subjects        string // 住户名册，如 "users"
		EventsPrefix    string // 住户事件历史前缀，如 "events_"
		LegacyEventsKey string // 旧版全局事件键，如 "care_events"
	}

	Log struct {
		Level  string
		Format string
		Output string // "stdout"、"stderr" 或文件路径
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Store.Backend = getEnv("STORE_BACKEND", BackendMemory)
	cfg.Store.SnapshotPath = getEnv("SNAPSHOT_PATH", "")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "owlrd")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.Table = getEnv("DB_TABLE", "carelog_kv")
	cfg.Database.MaxConns = 4
	cfg.Database.MaxIdle = 2

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.KeyPrefix = getEnv("REDIS_KEY_PREFIX", "")

	cfg.Keys.Subjects = getEnv("SUBJECTS_KEY", "users")
	cfg.Keys.EventsPrefix = getEnv("EVENTS_KEY_PREFIX", "events_")
	cfg.Keys.LegacyEventsKey = getEnv("LEGACY_EVENTS_KEY", "care_events")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.Log.Output = getEnv("LOG_OUTPUT", "stderr")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unsupported store backend: %s", c.Store.Backend)
	}
	if c.Store.Backend == BackendPostgres && c.Database.Table == "" {
		return fmt.Errorf("database table must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 非法值回退到默认值
func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v >= 0 {
		return v
	}
	return defaultValue
}
