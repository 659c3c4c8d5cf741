// log — прокладка request-scoped логгера через context.
//
// Соглашение по слоям:
//   - middleware/транспорт кладёт обогащённый логгер через Into;
//   - нижние слои достают его через From и никогда не держат
//     собственных ссылок на глобальный логгер.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с положенным в него логгером l.
// l == nil не кладётся: From в этом случае вернёт slog.Default().
func Into(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста.
// Если логгера нет — возвращает slog.Default(), чтобы вызовы были безопасны всегда.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}
