package aggregate

// Тесты точечного обогащения поста (internal/aggregate/post.go).

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
	"github.com/pribylovaa/go-social-gateway/internal/clients/transport"
	"github.com/pribylovaa/go-social-gateway/internal/models"
)

func TestPost_UpstreamFailure_PassThrough(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	a := newTestAggregator(t, u)

	upstream := &clients.Response{Status: http.StatusBadGateway, Header: http.Header{}, Body: []byte("nope")}

	resp, err := a.Post(httptest.NewRequest(http.MethodGet, "/posts/P1", nil), upstream)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.Status)
	require.Equal(t, []byte("nope"), resp.Body)
	require.Zero(t, u.calls.Load())
}

func TestPost_UndecodableBody_NotFound(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	a := newTestAggregator(t, u)

	tcs := []struct {
		name string
		body []byte
	}{
		{"not_json", []byte("<html>")},
		{"empty_object", []byte("{}")}, // разобрался, но поста нет (пустой id)
		{"null", []byte("null")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			upstream := &clients.Response{Status: http.StatusOK, Header: http.Header{}, Body: tc.body}

			resp, err := a.Post(httptest.NewRequest(http.MethodGet, "/posts/P1", nil), upstream)
			require.NoError(t, err)
			require.Equal(t, http.StatusNotFound, resp.Status)
			require.Equal(t, "post not found", string(resp.Body))
		})
	}

	require.Zero(t, u.calls.Load())
}

// Пустая запись не затирает комментарии поста; счётчики перезаписываются всегда.
func TestPost_CommentsAsymmetry(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	u.stats["P1"] = models.PostStats{PostID: "P1", Likes: 3, Views: 8, Liked: true}

	a := newTestAggregator(t, u)

	post := models.Post{ID: "P1", Comments: []models.Comment{{ID: "c-old"}}}

	resp, err := a.Post(httptest.NewRequest(http.MethodGet, "/posts/P1", nil), jsonBody(t, http.StatusOK, post))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)

	var out models.Post
	require.NoError(t, json.Unmarshal(resp.Body, &out))

	require.Len(t, out.Comments, 1)
	require.Equal(t, "c-old", out.Comments[0].ID)
	require.Equal(t, int64(3), out.Likes)
	require.Equal(t, int64(8), out.Views)
	require.True(t, out.Liked)
}

func TestPost_ViewerFromQuery(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	a := newTestAggregator(t, u)

	post := models.Post{ID: "P1"}
	_, err := a.Post(httptest.NewRequest(http.MethodGet, "/posts/P1?userId=U9", nil), jsonBody(t, http.StatusOK, post))
	require.NoError(t, err)

	require.Equal(t, "userId=U9", u.statsQuery())
}

// Без query-параметра зритель берётся из subject Bearer-токена (контекст).
func TestPost_ViewerFromClaims(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	a := newTestAggregator(t, u)

	r := httptest.NewRequest(http.MethodGet, "/posts/P1", nil)
	r = r.WithContext(context.WithValue(r.Context(), transport.CtxViewerID, "U42"))

	_, err := a.Post(r, jsonBody(t, http.StatusOK, models.Post{ID: "P1"}))
	require.NoError(t, err)

	require.Equal(t, "userId=U42", u.statsQuery())
}

func TestPost_StatsFailure_FailsRequest(t *testing.T) {
	t.Parallel()

	u := newUpstreamStub(t)
	u.failStats["P1"] = true

	a := newTestAggregator(t, u)

	_, err := a.Post(httptest.NewRequest(http.MethodGet, "/posts/P1", nil), jsonBody(t, http.StatusOK, models.Post{ID: "P1"}))
	require.ErrorIs(t, err, clients.ErrUpstream)
}
