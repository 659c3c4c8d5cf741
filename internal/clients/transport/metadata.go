package transport

import "net/http"

// WithMetadata — добавляет в исходящий HTTP-вызов заголовки:
//   - X-Request-Id (если есть в контексте),
//   - Authorization (если есть в контексте) — входящее значение форвардится
//     на каждый второй-уровневый вызов дословно, со схемой;
//   - User-Agent (если передан параметром).
//
// Исходный запрос не мутируется: по контракту RoundTripper работаем с клоном.
func WithMetadata(next http.RoundTripper, userAgent string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return Func(func(r *http.Request) (*http.Response, error) {
		out := r.Clone(r.Context())
		ctx := r.Context()

		if v := ctx.Value(CtxRequestID); v != nil {
			if rid, _ := v.(string); rid != "" {
				out.Header.Set("X-Request-Id", rid)
			}
		}
		if v := ctx.Value(CtxAuthorization); v != nil {
			if auth, _ := v.(string); auth != "" {
				out.Header.Set("Authorization", auth)
			}
		}
		if userAgent != "" {
			out.Header.Set("User-Agent", userAgent)
		}

		return next.RoundTrip(out)
	})
}
