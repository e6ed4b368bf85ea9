package domain

// NewsArticle — статья новостной ленты о климате.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Content     string `json:"content"`
}
