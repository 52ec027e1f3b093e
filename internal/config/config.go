// config предоставляет структуру конфигурации story-reader
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые движки офлайн-хранилища.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineRedis    = "redis"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string         `yaml:"env"      env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreConfig    `yaml:"store"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Probe    ProbeConfig    `yaml:"probe"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// StoreConfig — настройки офлайн-хранилища.
// Engine выбирает реализацию; для выбранного движка обязателен его DSN/путь.
type StoreConfig struct {
	Engine string `yaml:"engine" env:"STORE_ENGINE" env-default:"sqlite"`
	// Путь к файлу БД для engine=sqlite.
	Path string `yaml:"path" env:"STORE_PATH" env-default:"story-reader.db"`
	// DSN PostgreSQL для engine=postgres.
	URL string `yaml:"url" env:"DATABASE_URL"`
	// URL Redis для engine=redis (например, redis://:pass@host:6379/0).
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

// UpstreamConfig — параметры клиента origin (контент-API).
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

// CacheConfig — политика удержания офлайн-кэша.
type CacheConfig struct {
	// TTL записи; по истечении запись логически удалена.
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"720h"`
	// Максимум живых записей; лишние вытесняются старейшими вперёд.
	MaxRecords int `yaml:"max_records" env:"CACHE_MAX_RECORDS" env-default:"50"`
}

// ProbeConfig — параметры проверки достижимости origin.
type ProbeConfig struct {
	// Таймаут одного запроса-пробы.
	Timeout time.Duration `yaml:"timeout" env:"PROBE_TIMEOUT" env-default:"3s"`
	// Интервал периодической перепроверки в состоянии offline.
	Interval time.Duration `yaml:"interval" env:"PROBE_INTERVAL" env-default:"15s"`
	// Пути на origin, опрашиваемые по порядку до первого достижимого.
	// Можно задать через ENV PROBE_PATHS, разделитель — запятая.
	Paths []string `yaml:"paths" env:"PROBE_PATHS" env-separator:"," env-default:"/healthz"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	switch c.Store.Engine {
	case EngineSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for engine=sqlite")
		}
	case EnginePostgres:
		if c.Store.URL == "" {
			return fmt.Errorf("store.url is required for engine=postgres")
		}
	case EngineRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for engine=redis")
		}
	default:
		return fmt.Errorf("store.engine must be one of: sqlite, postgres, redis")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}
	if c.Cache.MaxRecords <= 0 {
		return fmt.Errorf("cache.max_records must be > 0")
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be > 0")
	}
	if c.Probe.Interval < time.Second {
		return fmt.Errorf("probe.interval must be at least 1s")
	}
	if len(c.Probe.Paths) == 0 {
		return fmt.Errorf("probe.paths must contain at least one path")
	}
	return nil
}
