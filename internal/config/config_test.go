package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "8080"
metrics:
  host: "127.0.0.1"
  port: "9090"
upstreams:
  profile_url: "http://users:8080/users/{id}"
  relations_url: "http://graph:8080/users/{id}/relations"
  user_posts_url: "http://posts:8080/users/{id}/posts"
  feed_url: "http://feed:8080/users/{id}/feed"
  content_url: "http://posts:8080/posts/{id}"
  stats_url: "http://interactions:8080/posts/{id}/stats"
cache:
  addr: "redis:6379"
  ttl: "30s"
aggregate:
  max_page_size: 50
timeouts:
  service: "3s"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

// YAML с шаблоном апстрима без плейсхолдера {id}.
const badTemplateYAML = `
upstreams:
  content_url: "http://posts:8080/posts"
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestMetricsConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := MetricsConfig{Host: "127.0.0.1", Port: "9090"}
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, "8080", cfg.HTTP.Port)
	require.Equal(t, "127.0.0.1", cfg.Metrics.Host)
	require.Equal(t, "9090", cfg.Metrics.Port)

	require.Equal(t, "http://users:8080/users/{id}", cfg.Upstreams.ProfileURL)
	require.Equal(t, "http://graph:8080/users/{id}/relations", cfg.Upstreams.RelationsURL)
	require.Equal(t, "http://posts:8080/users/{id}/posts", cfg.Upstreams.UserPostsURL)
	require.Equal(t, "http://feed:8080/users/{id}/feed", cfg.Upstreams.FeedURL)
	require.Equal(t, "http://posts:8080/posts/{id}", cfg.Upstreams.ContentURL)
	require.Equal(t, "http://interactions:8080/posts/{id}/stats", cfg.Upstreams.StatsURL)

	require.Equal(t, "redis:6379", cfg.Cache.Addr)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.Equal(t, 50, cfg.Aggregate.MaxPageSize)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_TemplateWithoutPlaceholder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "bad.yaml", badTemplateYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "{id}")
}

func TestValidate_MaxPageSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, "ok.yaml", sampleYAML))
	require.NoError(t, err)

	cfg.Aggregate.MaxPageSize = 0
	require.Error(t, cfg.Validate())
}
