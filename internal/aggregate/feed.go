package aggregate

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/models"
)

// Feed разворачивает страницу голых id постов в страницу обогащённых постов.
//
// Состояния: получена страница -> две волны обогащения -> merge -> готово;
// пустая/отсутствующая страница сразу даёт 204 без единого исходящего вызова.
//
// Контракт:
//   - не-2xx ответ апстрима форвардится без попытки обогащения;
//   - пагинационные поля (size/hasMore/cursor) — сквозные, из входной страницы;
//   - id зрителя берётся из сегмента пути за "users"
//     (.../users/{viewerId}/feed) и параметризует интеракционную волну;
//   - провал любой операции волны — ошибка всего запроса (fail-fast).
func (a *Aggregator) Feed(r *http.Request, upstream *clients.Response) (*clients.Response, error) {
	const op = "aggregate/Feed"

	if !upstream.OK() {
		return upstream, nil
	}

	var page models.Page[string]
	if len(upstream.Body) == 0 || json.Unmarshal(upstream.Body, &page) != nil || len(page.Items) == 0 {
		return noContent(), nil
	}

	viewerID := viewerFromPath(r.URL.Path)

	merged, err := a.enrichIDs(r.Context(), page.Items, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := jsonOK(models.Rewrap(page, merged))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
