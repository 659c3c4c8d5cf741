// aggregate — сборка клиентского ответа из нескольких ответов бэкендов.
//
// Три сценария:
//   - Feed: страница голых id постов -> две волны обогащения -> merge-join;
//   - Post: один пост -> одна интеракционная запись -> точечный merge;
//   - Profile: именованные ответы profile/relations/posts -> волна
//     обогащения постов -> единый документ профиля.
//
// Каждый выход агрегатора — готовый HTTP-ответ (clients.Response): статус,
// заголовки и тело. Наружу не утекает ни одна транспортная ошибка — провал
// волны обогащения поднимается ошибкой и конвертируется errors-слоем.
package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/clients/transport"
	"github.com/pribylovaa/go-social-gateway/internal/fetch"
	"github.com/pribylovaa/go-social-gateway/internal/merge"
	"github.com/pribylovaa/go-social-gateway/internal/metrics"
	"github.com/pribylovaa/go-social-gateway/internal/models"
	"github.com/pribylovaa/go-social-gateway/pkg/log"
)

// Aggregator держит клиентов апстримов и пулы scratch-буферов волн.
// Пулы — единственный общий ресурс между запросами; выдачи независимы.
type Aggregator struct {
	cl      *clients.Clients
	posts   *fetch.Pool[models.Post]
	stats   *fetch.Pool[models.PostStats]
	maxPage int
}

// New создаёт агрегатор; maxPageSize задаёт ёмкость буферов пулов
// и жёсткий потолок размера волны.
func New(cl *clients.Clients, maxPageSize int) *Aggregator {
	if maxPageSize <= 0 {
		maxPageSize = 100
	}

	return &Aggregator{
		cl:      cl,
		posts:   fetch.NewPool[models.Post](maxPageSize),
		stats:   fetch.NewPool[models.PostStats](maxPageSize),
		maxPage: maxPageSize,
	}
}

// jsonOK сериализует v в готовый 200-ответ.
func jsonOK(v any) (*clients.Response, error) {
	const op = "aggregate/jsonOK"

	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")

	return &clients.Response{Status: http.StatusOK, Header: h, Body: body}, nil
}

// notFound — синтезированный 404 с коротким plain-text объяснением.
func notFound(msg string) *clients.Response {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")

	return &clients.Response{Status: http.StatusNotFound, Header: h, Body: []byte(msg)}
}

// noContent — 204 без тела: страница есть, контента нет.
func noContent() *clients.Response {
	return &clients.Response{Status: http.StatusNoContent, Header: http.Header{}}
}

// viewerFromPath достаёт id зрителя из сегмента за "users" — путь может
// нести произвольный префикс базового маршрута (/api/users/{viewerId}/...).
func viewerFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p == "users" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	return ""
}

// clampPage обрезает волну до потолка maxPage; обрезка — нарушение контракта
// апстримом, поэтому шумим в лог и метрику.
func clampPage[T any](ctx context.Context, items []T, maxPage int) []T {
	if len(items) <= maxPage {
		return items
	}

	metrics.PageTruncated.Inc()
	log.From(ctx).Warn("page_truncated",
		slog.Int("got", len(items)),
		slog.Int("max", maxPage),
	)

	return items[:maxPage]
}

// viewerFromClaims — субъект аутентифицированного принципала,
// положенный auth-middleware в контекст.
func viewerFromClaims(ctx context.Context) string {
	if v := ctx.Value(transport.CtxViewerID); v != nil {
		if id, _ := v.(string); id != "" {
			return id
		}
	}

	return ""
}

// enrichIDs разворачивает список id в обогащённые посты: две конкурентные
// волны равной мощности (полный пост + интеракционная запись на каждый id),
// затем merge-join по идентичности.
func (a *Aggregator) enrichIDs(ctx context.Context, ids []string, viewerID string) ([]models.Post, error) {
	const op = "aggregate/enrichIDs"

	ids = clampPage(ctx, ids, a.maxPage)

	metrics.FanoutSize.Observe(float64(len(ids)))

	var (
		posts []models.Post
		stats []models.PostStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = fetch.Collect(gctx, a.posts, ids, func(ctx context.Context, id string) (models.Post, error) {
			return a.cl.PostByID(ctx, id)
		})
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = fetch.Collect(gctx, a.stats, ids, func(ctx context.Context, id string) (models.PostStats, error) {
			return a.cl.StatsByPost(ctx, id, viewerID)
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a.mergeWave(posts, stats), nil
}

// enrichPosts обогащает уже полные посты одной волной интеракционных записей.
func (a *Aggregator) enrichPosts(ctx context.Context, posts []models.Post, viewerID string) ([]models.Post, error) {
	const op = "aggregate/enrichPosts"

	posts = clampPage(ctx, posts, a.maxPage)

	metrics.FanoutSize.Observe(float64(len(posts)))

	stats, err := fetch.Collect(ctx, a.stats, posts, func(ctx context.Context, p models.Post) (models.PostStats, error) {
		return a.cl.StatsByPost(ctx, p.ID, viewerID)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a.mergeWave(posts, stats), nil
}

func (a *Aggregator) mergeWave(posts []models.Post, stats []models.PostStats) []models.Post {
	merged, applied := merge.Posts(posts, stats)

	metrics.MergeApplied.Add(float64(applied))
	metrics.MergeOrphaned.Add(float64(len(stats) - applied))

	return merged
}
