package aggregate

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/merge"
	"github.com/pribylovaa/go-social-gateway/internal/models"
)

// Post обогащает ответ с одним постом его интеракционной записью.
//
// Контракт:
//   - не-2xx ответ апстрима форвардится без попытки обогащения;
//   - тело, не разбирающееся в пост, — доменный 404, не ошибка;
//   - id зрителя: query-параметр userId, иначе субъект Bearer-токена;
//   - комментарии подменяются только непустой записью (пустая запись —
//     "нет информации", а не "комментариев нет"); likes/views/liked
//     перезаписываются из записи всегда.
func (a *Aggregator) Post(r *http.Request, upstream *clients.Response) (*clients.Response, error) {
	const op = "aggregate/Post"

	if !upstream.OK() {
		return upstream, nil
	}

	var post models.Post
	if err := json.Unmarshal(upstream.Body, &post); err != nil || post.ID == "" {
		return notFound("post not found"), nil
	}

	viewerID := r.URL.Query().Get("userId")
	if viewerID == "" {
		viewerID = viewerFromClaims(r.Context())
	}

	stats, err := a.cl.StatsByPost(r.Context(), post.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merge.One(&post, &stats)

	out, err := jsonOK(post)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
