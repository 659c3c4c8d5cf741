package models

// Profile — профиль пользователя, собираемый из нескольких бэкендов.
// Relations и Posts проставляются агрегатором один раз на запрос.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	BannerURL   string `json:"bannerUrl,omitempty"`

	Relations *Relations  `json:"relations,omitempty"`
	Posts     *Page[Post] `json:"posts,omitempty"`
}

// Relations — срез графа связей пользователя.
// Каждый список независим и может отсутствовать целиком.
type Relations struct {
	Followers     []UserSummary `json:"followers,omitempty"`
	Following     []UserSummary `json:"following,omitempty"`
	Blocked       []UserSummary `json:"blocked,omitempty"`
	Friends       []UserSummary `json:"friends,omitempty"`
	RequestsSent  []UserSummary `json:"requestsSent,omitempty"`
	RequestsInbox []UserSummary `json:"requestsInbox,omitempty"`
}
