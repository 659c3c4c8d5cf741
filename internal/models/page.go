package models

// Page — страница пагинации произвольных элементов.
//
// Size/HasMore/Cursor — сквозные: шлюз подменяет Items (например, страницу
// голых id на страницу обогащённых постов), но семантику пагинации не меняет —
// курсор принадлежит породившему страницу бэкенду.
type Page[T any] struct {
	Items   []T    `json:"items"`
	Size    int32  `json:"size"`
	HasMore bool   `json:"hasMore"`
	Cursor  string `json:"cursor,omitempty"`
}

// Rewrap переносит пагинационные поля страницы p на новый набор элементов.
func Rewrap[T, U any](p Page[T], items []U) Page[U] {
	return Page[U]{
		Items:   items,
		Size:    p.Size,
		HasMore: p.HasMore,
		Cursor:  p.Cursor,
	}
}
