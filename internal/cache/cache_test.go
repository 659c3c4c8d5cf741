package cache

// Кеш — опциональная зависимость: выключенное состояние (nil) обязано быть
// полностью рабочим no-op, иначе каждый вызов клиентов обрастает проверками.
// Включённое состояние проверяется поверх miniredis: симметрия чтения и
// записи по одной паре (пост, зритель).

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-social-gateway/internal/models"
)

func TestNew_EmptyAddr_Disabled(t *testing.T) {
	t.Parallel()

	require.Nil(t, New("", 0))
}

func TestNilCache_Noop(t *testing.T) {
	t.Parallel()

	var s *Stats

	got, ok := s.Get(context.Background(), "P1", "U1")
	require.Nil(t, got)
	require.False(t, ok)

	require.NotPanics(t, func() {
		s.Set(context.Background(), "P1", "U1", &models.PostStats{PostID: "P1"})
	})

	require.NoError(t, s.Close())
}

func TestKey_IncludesViewer(t *testing.T) {
	t.Parallel()

	// Запись персонализирована: разные зрители — разные ключи.
	require.NotEqual(t, key("P1", "U1"), key("P1", "U2"))
	require.Equal(t, "stats:P1:U1", key("P1", "U1"))
}

func newEnabledCache(t *testing.T) *Stats {
	t.Helper()

	mr := miniredis.RunT(t)

	s := New(mr.Addr(), time.Minute)
	require.NotNil(t, s)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestEnabledCache_ReadAfterWrite(t *testing.T) {
	t.Parallel()

	s := newEnabledCache(t)
	ctx := context.Background()

	s.Set(ctx, "P1", "U1", &models.PostStats{PostID: "P1", Likes: 3})

	got, ok := s.Get(ctx, "P1", "U1")
	require.True(t, ok)
	require.Equal(t, int64(3), got.Likes)

	// Чужой зритель той же записи не видит.
	_, ok = s.Get(ctx, "P1", "U2")
	require.False(t, ok)
}

// Тело апстрима может эхо-ить чужой postId (сиротская запись) — ключ всё
// равно строится по запрошенному посту, и чтение по нему попадает.
func TestEnabledCache_KeyedByRequestedID(t *testing.T) {
	t.Parallel()

	s := newEnabledCache(t)
	ctx := context.Background()

	s.Set(ctx, "P1", "U1", &models.PostStats{PostID: "P9", Likes: 7})

	got, ok := s.Get(ctx, "P1", "U1")
	require.True(t, ok)
	require.Equal(t, "P9", got.PostID)
	require.Equal(t, int64(7), got.Likes)

	// Под id из тела ничего не писали.
	_, ok = s.Get(ctx, "P9", "U1")
	require.False(t, ok)
}
