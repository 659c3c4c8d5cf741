// clients агрегирует HTTP-клиенты апстрим-бэкендов шлюза.
//
// Деление на волны:
//   - первая волна — ответы, которые хендлеры собирают под логическими
//     именами (profile/relations/posts, страница фида, один пост); они
//     отдаются агрегаторам как есть, в виде Response;
//   - вторая волна — по-элементные вызовы обогащения (PostByID/StatsByPost),
//     уже типизированные: битый payload здесь — ошибка fan-out'а.
//
// Authorization вызывающего и X-Request-Id форвардятся на каждый исходящий
// вызов транспортной цепочкой (transport.WithMetadata).
package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-social-gateway/internal/cache"
	"github.com/pribylovaa/go-social-gateway/internal/clients/transport"
	"github.com/pribylovaa/go-social-gateway/internal/config"
	"github.com/pribylovaa/go-social-gateway/internal/metrics"
)

// Предохранитель от патологически больших тел апстримов.
const maxBodyBytes = 8 << 20

var (
	// ErrUpstream — транспортная ошибка или не-2xx статус второй волны.
	ErrUpstream = errors.New("upstream call failed")
	// ErrDecode — апстрим ответил 2xx, но тело не разбирается в ожидаемую модель.
	ErrDecode = errors.New("upstream payload decode failed")
)

// Response — сырой ответ апстрима: статус, заголовки и прочитанное тело.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK — успешный ли статус (2xx).
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Clients — исходящие вызовы ко всем апстримам.
type Clients struct {
	httpc     *http.Client
	upstreams config.UpstreamsConfig
	stats     *cache.Stats
}

// New собирает клиент с транспортной цепочкой metadata -> logging.
// stats == nil — кеш интеракционных записей выключен.
func New(cfg config.Config, log *slog.Logger, stats *cache.Stats) *Clients {
	const userAgent = "social-gateway"

	chain := transport.WithMetadata(
		transport.WithLogging(http.DefaultTransport, log),
		userAgent,
	)

	return &Clients{
		// Таймауты навешивает middleware через ctx, клиентского дедлайна нет:
		// отмена входящего запроса должна рубить все волны одинаково.
		httpc:     &http.Client{Transport: chain},
		upstreams: cfg.Upstreams,
		stats:     stats,
	}
}

// expand подставляет path-escaped id в URL-шаблон апстрима.
func expand(tpl, id string) string {
	return strings.Replace(tpl, "{id}", url.PathEscape(id), 1)
}

// Get выполняет GET и вычитывает тело целиком.
// Ошибка возвращается только на транспортном уровне; не-2xx статус — это
// валидный Response, решение о pass-through принимает агрегатор.
func (c *Clients) Get(ctx context.Context, backend, rawURL string) (*Response, error) {
	const op = "clients/Get"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.OutboundCalls.WithLabelValues(backend, "error").Inc()
		return nil, fmt.Errorf("%s: %s: %w: %w", op, backend, ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.OutboundCalls.WithLabelValues(backend, "error").Inc()
		return nil, fmt.Errorf("%s: %s: read body: %w: %w", op, backend, ErrUpstream, err)
	}

	metrics.OutboundCalls.WithLabelValues(backend, "ok").Inc()

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

// Profile — первая волна: профиль пользователя.
func (c *Clients) Profile(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, "profile", expand(c.upstreams.ProfileURL, userID))
}

// Relations — первая волна: срез графа связей пользователя.
func (c *Clients) Relations(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, "relations", expand(c.upstreams.RelationsURL, userID))
}

// UserPosts — первая волна: страница постов владельца профиля.
func (c *Clients) UserPosts(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, "posts", expand(c.upstreams.UserPostsURL, userID))
}

// FeedPage — первая волна: страница фида зрителя.
// rawQuery (limit/cursor) форвардится апстриму как есть.
func (c *Clients) FeedPage(ctx context.Context, viewerID, rawQuery string) (*Response, error) {
	u := expand(c.upstreams.FeedURL, viewerID)
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	return c.Get(ctx, "feed", u)
}

// Content — первая волна: один пост по id (сырой ответ для pass-through).
func (c *Clients) Content(ctx context.Context, postID string) (*Response, error) {
	return c.Get(ctx, "content", expand(c.upstreams.ContentURL, postID))
}
