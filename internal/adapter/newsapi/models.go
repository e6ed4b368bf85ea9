package newsapi

// ArticleSource — источник статьи в ответе NewsAPI
type ArticleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArticleResponse — одна статья в ответе /everything
type ArticleResponse struct {
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

// EverythingResponse для ответа
type EverythingResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []ArticleResponse `json:"articles"`
	Code         string            `json:"code,omitempty"`
	Message      string            `json:"message,omitempty"`
}
