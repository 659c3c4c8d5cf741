package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-social-gateway/internal/errors"
)

// GetPost — GET /posts/{id}.
// Первая волна — пост от контент-бэкенда, затем агрегатор доливает
// интеракционную запись (зритель — query-параметр userId, если задан).
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	upstream, err := h.Clients.Content(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Aggregator.Post(r, upstream)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeResponse(w, resp)
}
