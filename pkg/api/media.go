package api

// MediaType is the type of an uploaded item.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaItem представляет одну загрузку в ленте
type MediaItem struct {
	ID          string    `json:"id"`
	Type        MediaType `json:"type"`
	DownloadURL string    `json:"download_url"`
	Media       string    `json:"media"` // публичная ссылка для шаринга
	Likes       int       `json:"likes"`
}

// MediaPage представляет страницу ленты. Поля пагинации сервер может не присылать.
type MediaPage struct {
	Media    []MediaItem `json:"media"`
	Page     int         `json:"page,omitempty"`
	NextPage int         `json:"next_page,omitempty"`
	HasMore  bool        `json:"has_more,omitempty"`
}

// MediaPageResponse оборачивает страницу ленты в поле data
type MediaPageResponse struct {
	Data MediaPage `json:"data"`
}
