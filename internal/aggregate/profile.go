package aggregate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/models"
	"github.com/pribylovaa/go-social-gateway/pkg/log"
)

// Имена логических бэкендов первой волны профиля.
const (
	BackendProfile   = "profile"
	BackendRelations = "relations"
	BackendPosts     = "posts"
)

// Profile собирает единый документ профиля из именованных ответов бэкендов.
//
// Порядок строгий: сначала профиль — его отсутствие/неразбираемость даёт
// синтезированный 404 до того, как тронут любой другой ответ. Relations и
// posts деградируют мягко: их отсутствие или битое тело оставляет
// соответствующее поле пустым, запрос не ломается.
//
// Id зрителя: query-параметр userId запроса, иначе субъект Bearer-токена,
// иначе владелец профиля ("смотрю сам на себя").
//
// Заголовки всех составных ответов объединяются; Content-Type
// перезаписывается на application/json.
func (a *Aggregator) Profile(r *http.Request, named map[string]*clients.Response) (*clients.Response, error) {
	const op = "aggregate/Profile"

	lg := log.From(r.Context())

	prof := named[BackendProfile]
	if !prof.OK() {
		return notFound("profile not found"), nil
	}

	var profile models.Profile
	if err := json.Unmarshal(prof.Body, &profile); err != nil || profile.ID == "" {
		return notFound("profile not found"), nil
	}

	// Relations: мягкая деградация.
	if resp := named[BackendRelations]; resp.OK() {
		var rel models.Relations
		if err := json.Unmarshal(resp.Body, &rel); err != nil {
			lg.Warn("relations_decode_failed", slog.String("op", op), slog.String("err", err.Error()))
		} else {
			profile.Relations = &rel
		}
	}

	// Посты владельца: мягкая деградация + обогащение интеракциями.
	var page models.Page[models.Post]
	havePosts := false
	if resp := named[BackendPosts]; resp.OK() {
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			lg.Warn("posts_decode_failed", slog.String("op", op), slog.String("err", err.Error()))
		} else {
			havePosts = true
		}
	}

	viewerID := r.URL.Query().Get("userId")
	if viewerID == "" {
		viewerID = viewerFromClaims(r.Context())
	}
	if viewerID == "" {
		viewerID = profile.ID
	}

	if havePosts {
		merged, err := a.enrichPosts(r.Context(), page.Items, viewerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		enriched := models.Rewrap(page, merged)
		profile.Posts = &enriched
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &clients.Response{
		Status: http.StatusOK,
		Header: unionHeaders(named),
		Body:   body,
	}, nil
}

// unionHeaders объединяет заголовки составных ответов в один набор
// и принудительно проставляет JSON Content-Type.
func unionHeaders(named map[string]*clients.Response) http.Header {
	h := http.Header{}
	for _, resp := range named {
		if resp == nil {
			continue
		}
		for k, vals := range resp.Header {
			for _, v := range vals {
				h.Add(k, v)
			}
		}
	}

	h.Del("Content-Length")
	h.Set("Content-Type", "application/json")

	return h
}
