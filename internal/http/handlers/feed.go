package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-social-gateway/internal/errors"
)

// GetFeed — GET /users/{id}/feed.
// Первая волна — страница голых id постов от фид-бэкенда (limit/cursor
// форвардятся как есть), затем агрегатор разворачивает её в страницу
// обогащённых постов.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := chi.URLParam(r, "id")
	if viewerID == "" {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	upstream, err := h.Clients.FeedPage(r.Context(), viewerID, r.URL.RawQuery)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Aggregator.Feed(r, upstream)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeResponse(w, resp)
}
