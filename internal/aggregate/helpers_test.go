package aggregate

// Общий харнесс тестов агрегаторов: один httptest-бэкенд изображает все
// апстримы второй волны (контент и интеракции), шаблоны URL в конфиге
// указывают на него. Счётчик обращений позволяет проверять "ноль исходящих
// вызовов" для коротких путей (204/pass-through).

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/config"
	"github.com/pribylovaa/go-social-gateway/internal/models"
)

// upstreamStub — управляемый апстрим второй волны.
type upstreamStub struct {
	srv   *httptest.Server
	calls atomic.Int64

	// RawQuery последнего /stats запроса — для проверок параметризации.
	lastStatsQuery atomic.Value

	posts map[string]models.Post
	stats map[string]models.PostStats
	// failStats: id постов, для которых интеракционный бэкенд отвечает 500.
	failStats map[string]bool
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	t.Helper()

	u := &upstreamStub{
		posts:     map[string]models.Post{},
		stats:     map[string]models.PostStats{},
		failStats: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		post, ok := u.posts[r.PathValue("id")]
		if !ok {
			http.Error(w, "no post", http.StatusNotFound)
			return
		}
		writeJSON(w, post)
	})
	mux.HandleFunc("GET /posts/{id}/stats", func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.lastStatsQuery.Store(r.URL.RawQuery)

		id := r.PathValue("id")
		if u.failStats[id] {
			http.Error(w, "stats down", http.StatusInternalServerError)
			return
		}

		rec, ok := u.stats[id]
		if !ok {
			// Запись по умолчанию: нулевые счётчики для своего id.
			rec = models.PostStats{PostID: id}
		}
		writeJSON(w, rec)
	})

	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)

	return u
}

func (u *upstreamStub) statsQuery() string {
	if v := u.lastStatsQuery.Load(); v != nil {
		return v.(string)
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestAggregator собирает агрегатор поверх стаба.
func newTestAggregator(t *testing.T, u *upstreamStub) *Aggregator {
	return newTestAggregatorMax(t, u, 100)
}

func newTestAggregatorMax(t *testing.T, u *upstreamStub, maxPage int) *Aggregator {
	t.Helper()

	cfg := config.Config{
		Upstreams: config.UpstreamsConfig{
			ProfileURL:   u.srv.URL + "/users/{id}",
			RelationsURL: u.srv.URL + "/users/{id}/relations",
			UserPostsURL: u.srv.URL + "/users/{id}/posts",
			FeedURL:      u.srv.URL + "/users/{id}/feed",
			ContentURL:   u.srv.URL + "/posts/{id}",
			StatsURL:     u.srv.URL + "/posts/{id}/stats",
		},
	}

	cl := clients.New(cfg, slog.New(slog.DiscardHandler), nil)

	return New(cl, maxPage)
}

// jsonBody — маршал значения в Response с данным статусом.
func jsonBody(t *testing.T, status int, v any) *clients.Response {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)

	h := http.Header{}
	h.Set("Content-Type", "application/json")

	return &clients.Response{Status: status, Header: h, Body: body}
}
