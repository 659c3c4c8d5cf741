// config - источник загрузки конфигурации шлюза.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Upstreams UpstreamsConfig `yaml:"upstreams"`
	Cache     CacheConfig     `yaml:"cache"`
	Aggregate AggregateConfig `yaml:"aggregate"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер шлюза.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50070"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50075"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// UpstreamsConfig — URL-шаблоны бэкендов.
// Плейсхолдер {id} заменяется на path-escaped идентификатор.
type UpstreamsConfig struct {
	// Первая волна (ответы, которые шлюз собирает под именами profile/relations/posts).
	ProfileURL   string `yaml:"profile_url"   env:"UPSTREAM_PROFILE_URL"   env-default:"http://localhost:50071/users/{id}"`
	RelationsURL string `yaml:"relations_url" env:"UPSTREAM_RELATIONS_URL" env-default:"http://localhost:50072/users/{id}/relations"`
	UserPostsURL string `yaml:"user_posts_url" env:"UPSTREAM_USER_POSTS_URL" env-default:"http://localhost:50073/users/{id}/posts"`
	FeedURL      string `yaml:"feed_url"      env:"UPSTREAM_FEED_URL"      env-default:"http://localhost:50074/users/{id}/feed"`

	// Вторая волна (по-элементные вызовы обогащения).
	ContentURL string `yaml:"content_url" env:"UPSTREAM_CONTENT_URL" env-default:"http://localhost:50073/posts/{id}"`
	StatsURL   string `yaml:"stats_url"   env:"UPSTREAM_STATS_URL"   env-default:"http://localhost:50076/posts/{id}/stats"`
}

// CacheConfig — опциональный redis-кеш интеракционных записей.
// Пустой Addr отключает кеш целиком.
type CacheConfig struct {
	Addr string        `yaml:"addr" env:"CACHE_ADDR" env-default:""`
	TTL  time.Duration `yaml:"ttl"  env:"CACHE_TTL"  env-default:"15s"`
}

// AggregateConfig — пределы агрегации.
type AggregateConfig struct {
	// Максимальный размер страницы fan-out'а; буферы пула сайзятся под него.
	MaxPageSize int `yaml:"max_page_size" env:"AGGREGATE_MAX_PAGE_SIZE" env-default:"100"`
}

// TimeoutConfig — таймаут сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// Validate — минимальная проверка согласованности после загрузки.
func (c *Config) Validate() error {
	const op = "config/Validate"

	templates := map[string]string{
		"profile_url":    c.Upstreams.ProfileURL,
		"relations_url":  c.Upstreams.RelationsURL,
		"user_posts_url": c.Upstreams.UserPostsURL,
		"feed_url":       c.Upstreams.FeedURL,
		"content_url":    c.Upstreams.ContentURL,
		"stats_url":      c.Upstreams.StatsURL,
	}
	for name, tpl := range templates {
		if tpl == "" {
			return fmt.Errorf("%s: upstream %s is empty", op, name)
		}
		if !strings.Contains(tpl, "{id}") {
			return fmt.Errorf("%s: upstream %s: missing {id} placeholder", op, name)
		}
	}

	if c.Aggregate.MaxPageSize <= 0 {
		return fmt.Errorf("%s: aggregate max_page_size must be positive", op)
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
