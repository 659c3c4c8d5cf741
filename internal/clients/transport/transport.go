// transport предоставляет набор декораторов http.RoundTripper для исходящих
// вызовов шлюза. Цепочка собирается в clients.New: metadata -> logging.
package transport

import "net/http"

// CtxKey — ключи контекста, которые HTTP-слой кладёт для исходящих вызовов.
type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	// CtxAuthorization — значение входящего заголовка Authorization как есть,
	// вместе со схемой.
	CtxAuthorization CtxKey = "authorization"
	CtxViewerID      CtxKey = "viewer_id"
)

// Func — адаптер функции под http.RoundTripper.
type Func func(*http.Request) (*http.Response, error)

func (f Func) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
