// errors стандартизирует ответы об ошибках HTTP-слоя шлюза.
// На вход он принимает ошибку (обычно от исходящих вызовов или агрегаторов),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей апстримов.
//
// Спековые тела (404 plain-text при отсутствии первичной сущности,
// 204 для пустого фида, pass-through чужих статусов) формируют сами
// агрегаторы — сюда попадает только то, что не дошло до готового ответа.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-social-gateway/internal/clients"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrInvalidArgument — битые входные данные HTTP-слоя (пустой id и т.п.).
var ErrInvalidArgument = errors.New("invalid argument")

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует внутреннюю ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - отмена клиента -> 499, дедлайн -> 504;
//   - провал волны обогащения (транспорт/статус/битое тело апстрима) -> 502;
//   - битые входные -> 400;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return respond(http.StatusInternalServerError, "internal", "internal error")
	}

	switch {
	case errors.Is(err, context.Canceled):
		return respond(StatusClientClosedRequest, "canceled", "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return respond(http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded")
	case errors.Is(err, ErrInvalidArgument):
		return respond(http.StatusBadRequest, "invalid_argument", "invalid argument")
	case errors.Is(err, clients.ErrDecode):
		return respond(http.StatusBadGateway, "upstream_invalid", "upstream returned invalid payload")
	case errors.Is(err, clients.ErrUpstream):
		return respond(http.StatusBadGateway, "upstream_error", "upstream call failed")
	default:
		return respond(http.StatusInternalServerError, "internal", "internal error")
	}
}

func respond(status int, code, msg string) (int, ErrorResponse) {
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
