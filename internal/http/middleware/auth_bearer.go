package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-social-gateway/internal/clients/transport"
)

// AuthBearer кладёт значение входящего Authorization как есть в контекст по
// ключу transport.CtxAuthorization — metadata-декоратор форвардит его на
// каждый исходящий вызов дословно, независимо от схемы.
//
// Для Bearer-токенов дополнительно разбирает claims (без проверки подписи —
// валидация принадлежит auth-контуру, не шлюзу) и кладёт subject в контекст
// по ключу transport.CtxViewerID: это id аутентифицированного принципала,
// запасной источник идентичности зрителя для персонализации интеракций.
func AuthBearer() Middleware {
	parser := jwt.NewParser()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")

			if auth != "" {
				ctx := context.WithValue(r.Context(), transport.CtxAuthorization, auth)

				const prefix = "Bearer "
				if strings.HasPrefix(auth, prefix) {
					token := strings.TrimSpace(auth[len(prefix):])
					if sub := subjectOf(parser, token); sub != "" {
						ctx = context.WithValue(ctx, transport.CtxViewerID, sub)
					}
				}

				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// subjectOf — subject claim токена; пустая строка, если токен не разбирается.
func subjectOf(parser *jwt.Parser, token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}

	return sub
}
