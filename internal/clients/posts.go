package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pribylovaa/go-social-gateway/internal/models"
)

// PostByID — вторая волна: полный пост по идентификатору.
// Любой не-2xx статус и битое тело — ошибка fan-out'а (fail-fast волны).
func (c *Clients) PostByID(ctx context.Context, postID string) (models.Post, error) {
	const op = "clients/PostByID"

	resp, err := c.Get(ctx, "content", expand(c.upstreams.ContentURL, postID))
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	if !resp.OK() {
		return models.Post{}, fmt.Errorf("%s: %s: status=%d: %w", op, postID, resp.Status, ErrUpstream)
	}

	var post models.Post
	if err := json.Unmarshal(resp.Body, &post); err != nil {
		return models.Post{}, fmt.Errorf("%s: %s: %w: %w", op, postID, ErrDecode, err)
	}

	return post, nil
}

// StatsByPost — вторая волна: интеракционная запись поста.
// viewerID параметризует запись ("взаимодействовал ли этот зритель");
// пустой viewerID — неперсонализированная запись.
// Прозрачно ходит через опциональный кеш.
func (c *Clients) StatsByPost(ctx context.Context, postID, viewerID string) (models.PostStats, error) {
	const op = "clients/StatsByPost"

	if cached, ok := c.stats.Get(ctx, postID, viewerID); ok {
		return *cached, nil
	}

	u := expand(c.upstreams.StatsURL, postID)
	if viewerID != "" {
		u += "?userId=" + url.QueryEscape(viewerID)
	}

	resp, err := c.Get(ctx, "stats", u)
	if err != nil {
		return models.PostStats{}, fmt.Errorf("%s: %w", op, err)
	}

	if !resp.OK() {
		return models.PostStats{}, fmt.Errorf("%s: %s: status=%d: %w", op, postID, resp.Status, ErrUpstream)
	}

	var stats models.PostStats
	if err := json.Unmarshal(resp.Body, &stats); err != nil {
		return models.PostStats{}, fmt.Errorf("%s: %s: %w: %w", op, postID, ErrDecode, err)
	}

	c.stats.Set(ctx, postID, viewerID, &stats)

	return stats, nil
}
