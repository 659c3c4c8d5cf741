package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-social-gateway/internal/aggregate"
	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/fetch"
)

// Handlers агрегирует зависимости (клиенты апстримов и агрегатор).
type Handlers struct {
	Clients    *clients.Clients
	Aggregator *aggregate.Aggregator

	// Пул буферов именованной первой волны (профиль: profile/relations/posts).
	waves *fetch.Pool[*clients.Response]
}

func New(c *clients.Clients, a *aggregate.Aggregator) *Handlers {
	return &Handlers{
		Clients:    c,
		Aggregator: a,
		waves:      fetch.NewPool[*clients.Response](4),
	}
}

// writeResponse — вывод готового ответа агрегатора: статус, заголовки, тело.
// Статусы и тела апстримов при pass-through сохраняются дословно.
func writeResponse(w http.ResponseWriter, resp *clients.Response) {
	for k, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	w.WriteHeader(resp.Status)

	if len(resp.Body) > 0 && resp.Status != http.StatusNoContent {
		_, _ = w.Write(resp.Body)
	}
}
