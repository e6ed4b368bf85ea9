// internal/adapter/newsapi/client.go
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
)

// ErrMissingAPIKey возвращается, если NEWS_API_KEY не задан.
var ErrMissingAPIKey = errors.New("newsapi: api key is not configured")

// Client представляет клиент для взаимодействия с NewsAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient создает новый экземпляр Client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(cfg.NewsAPIBaseURL, "/"),
		apiKey:     cfg.NewsAPIKey,
	}
}

// FetchArticles реализует usecase.NewsFetcher.
func (c *Client) FetchArticles(ctx context.Context, query string, pageSize int) ([]domain.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("pageSize", strconv.Itoa(pageSize))
	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("newsapi returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload EverythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if payload.Status != "" && payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", payload.Code, payload.Message)
	}

	articles := make([]domain.NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, mapArticle(a))
	}
	return articles, nil
}

func mapArticle(a ArticleResponse) domain.NewsArticle {
	return domain.NewsArticle{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		Image:       a.URLToImage,
		Content:     a.Content,
	}
}
