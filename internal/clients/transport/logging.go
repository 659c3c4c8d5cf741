package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-gateway/pkg/log"
)

// WithLogging — логирование исходящих вызовов.
// Поведение:
//   - вытягивает X-Request-Id из запроса (или генерирует новый и добавляет);
//   - добавляет поля method/host/path, прокладывает обогащённый логгер
//     в контекст запроса (pkg/log);
//   - пишет одну финальную запись уровня Info: msg="http_out", status, dur.
//
// Безопасность: не логирует тело, query-строку и чувствительные заголовки.
func WithLogging(next http.RoundTripper, base *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if base == nil {
		base = slog.Default()
	}

	return Func(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		out := r.Clone(r.Context())

		rid := out.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
			out.Header.Set("X-Request-Id", rid)
		}

		l := base.With(
			slog.String("request_id", rid),
			slog.String("method", out.Method),
			slog.String("host", out.URL.Host),
			slog.String("path", out.URL.Path),
		)
		out = out.WithContext(log.Into(out.Context(), l))

		resp, err := next.RoundTrip(out)

		if err != nil {
			l.Warn("http_out",
				slog.String("err", err.Error()),
				slog.Duration("dur", time.Since(start)),
			)
			return nil, err
		}

		l.Info("http_out",
			slog.Int("status", resp.StatusCode),
			slog.Duration("dur", time.Since(start)),
		)

		return resp, nil
	})
}
