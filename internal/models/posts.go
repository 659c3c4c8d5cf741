// models содержит wire-модели шлюза.
//
// Все типы сериализуются наружу в lowerCamelCase; опциональные поля помечены
// omitempty, чтобы отсутствующие значения не появлялись в ответе как null.
// Идентификаторы постов — упорядоченные токены (ULID/UUIDv7 у бэкендов):
// лексикографический порядок приблизительно совпадает с порядком создания.
package models

// UserSummary — краткая карточка пользователя внутри чужих сущностей.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Attachment — файловое вложение поста.
type Attachment struct {
	URL  string `json:"url"`
	Kind string `json:"kind,omitempty"` // image/video/file; задаёт контент-сервис.
}

// Comment — комментарий верхнего уровня к посту.
type Comment struct {
	ID        string      `json:"id"`
	Author    UserSummary `json:"author"`
	Content   string      `json:"content"`
	CreatedAt int64       `json:"createdAt"` // Unix UTC
}

// Post — пост контент-сервиса, обогащаемый шлюзом.
//
// Шлюз мутирует только интеракционные поля (Comments/Likes/Views/Liked) —
// идентичность, автора и тело поста он не трогает.
type Post struct {
	ID          string       `json:"id"`
	Author      UserSummary  `json:"author"`
	Content     string       `json:"content"`
	CreatedAt   int64        `json:"createdAt"` // Unix UTC
	UpdatedAt   int64        `json:"updatedAt"` // Unix UTC
	Attachments []Attachment `json:"attachments,omitempty"`

	// Интеракционные поля; заполняются merge-joinом из PostStats.
	Comments []Comment `json:"comments,omitempty"`
	Likes    int64     `json:"likes"`
	Views    int64     `json:"views"`
	Liked    bool      `json:"liked"` // взаимодействовал ли текущий зритель
}

// PostStats — интеракционная запись по одному посту.
// PostID — внешняя ссылка на пост, не владение: запись живёт один цикл
// fetch+merge и после копирования полей в Post отбрасывается.
type PostStats struct {
	PostID   string    `json:"postId"`
	Comments []Comment `json:"comments,omitempty"`
	Likes    int64     `json:"likes"`
	Views    int64     `json:"views"`
	Liked    bool      `json:"liked"`
}
