// cache — опциональный короткоживущий кеш интеракционных записей в redis.
//
// Запись персонализирована зрителем, поэтому ключ включает и пост, и зрителя.
// Кеш — чистая оптимизация: любая ошибка redis трактуется как промах,
// наружу не поднимается и запрос не ломает.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/go-social-gateway/internal/metrics"
	"github.com/pribylovaa/go-social-gateway/internal/models"
	"github.com/pribylovaa/go-social-gateway/pkg/log"
)

// Stats — кеш записей PostStats.
// Нулевой указатель — валидный выключенный кеш: все методы no-op.
type Stats struct {
	client *redis.Client
	ttl    time.Duration
}

// New создаёт кеш поверх redis по адресу addr.
// Пустой addr возвращает nil — кеш выключен.
func New(addr string, ttl time.Duration) *Stats {
	if addr == "" {
		return nil
	}

	if ttl <= 0 {
		ttl = 15 * time.Second
	}

	return &Stats{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func key(postID, viewerID string) string {
	return fmt.Sprintf("stats:%s:%s", postID, viewerID)
}

// Get возвращает запись из кеша или (nil, false) при промахе.
func (s *Stats) Get(ctx context.Context, postID, viewerID string) (*models.PostStats, bool) {
	if s == nil {
		return nil, false
	}

	raw, err := s.client.Get(ctx, key(postID, viewerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.CacheHits.WithLabelValues("error").Inc()
			log.From(ctx).Warn("stats_cache_get_failed", slog.String("err", err.Error()))
			return nil, false
		}

		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats models.PostStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		metrics.CacheHits.WithLabelValues("error").Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues("hit").Inc()
	return &stats, true
}

// Set кладёт запись в кеш. Ошибки записи только логируются.
//
// Ключ строится по запрошенному postID, зеркально Get: stats.PostID из тела
// апстрима может разъехаться с запрошенным id (сиротские записи), и ключевание
// по телу уводило бы записи под чужой ключ.
func (s *Stats) Set(ctx context.Context, postID, viewerID string, stats *models.PostStats) {
	if s == nil || stats == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.client.Set(ctx, key(postID, viewerID), raw, s.ttl).Err(); err != nil {
		log.From(ctx).Warn("stats_cache_set_failed", slog.String("err", err.Error()))
	}
}

// Close закрывает соединение с redis.
func (s *Stats) Close() error {
	if s == nil {
		return nil
	}

	return s.client.Close()
}
