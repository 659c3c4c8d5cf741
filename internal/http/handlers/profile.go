package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-social-gateway/internal/aggregate"
	"github.com/pribylovaa/go-social-gateway/internal/clients"
	apierrors "github.com/pribylovaa/go-social-gateway/internal/errors"
	"github.com/pribylovaa/go-social-gateway/internal/fetch"
	"github.com/pribylovaa/go-social-gateway/pkg/log"
)

// namedCall — один вызов именованной первой волны профиля.
// required=false означает мягкую деградацию: ошибка вызова даёт nil-ответ
// под этим именем, а не провал всего запроса.
type namedCall struct {
	name     string
	required bool
	call     func(ctx context.Context) (*clients.Response, error)
}

// GetProfile — GET /users/{id}/profile.
// Первая волна — конкурентные именованные вызовы profile/relations/posts;
// только профиль обязателен. Собранные ответы отдаются агрегатору.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	ctx := r.Context()

	wave := []namedCall{
		{name: aggregate.BackendProfile, required: true, call: func(ctx context.Context) (*clients.Response, error) {
			return h.Clients.Profile(ctx, userID)
		}},
		{name: aggregate.BackendRelations, call: func(ctx context.Context) (*clients.Response, error) {
			return h.Clients.Relations(ctx, userID)
		}},
		{name: aggregate.BackendPosts, call: func(ctx context.Context) (*clients.Response, error) {
			return h.Clients.UserPosts(ctx, userID)
		}},
	}

	results, err := fetch.Collect(ctx, h.waves, wave, func(ctx context.Context, nc namedCall) (*clients.Response, error) {
		resp, err := nc.call(ctx)
		if err != nil {
			if nc.required {
				return nil, err
			}

			// Необязательный бэкенд: фиксируем и деградируем.
			log.From(ctx).Warn("profile_wave_degraded",
				slog.String("backend", nc.name),
				slog.String("err", err.Error()),
			)
			return nil, nil
		}

		return resp, nil
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	named := make(map[string]*clients.Response, len(wave))
	for i := range wave {
		named[wave[i].name] = results[i]
	}

	resp, err := h.Aggregator.Profile(r, named)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeResponse(w, resp)
}
