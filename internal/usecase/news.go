package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
)

const (
	DefaultNewsQuery = "global_warming"
	DefaultNewsLimit = 10
	MaxNewsLimit     = 50
)

// NewsFetcher определяет методы для получения статей из внешнего API
type NewsFetcher interface {
	FetchArticles(ctx context.Context, query string, pageSize int) ([]domain.NewsArticle, error)
}

// NewsUseCase отдаёт ленту новостей о климате.
type NewsUseCase interface {
	Latest(ctx context.Context, query string, limit int) ([]domain.NewsArticle, error)
}

type newsUseCase struct {
	fetcher NewsFetcher
	logger  *slog.Logger
}

func NewNewsUseCase(fetcher NewsFetcher, logger *slog.Logger) NewsUseCase {
	return &newsUseCase{fetcher: fetcher, logger: logger}
}

func (uc *newsUseCase) Latest(ctx context.Context, query string, limit int) ([]domain.NewsArticle, error) {
	if strings.TrimSpace(query) == "" {
		query = DefaultNewsQuery
	}
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if limit > MaxNewsLimit {
		limit = MaxNewsLimit
	}

	articles, err := uc.fetcher.FetchArticles(ctx, query, limit)
	if err != nil {
		uc.logger.Error("failed to fetch news", "query", query, "error", err)
		return nil, fmt.Errorf("%w: news: %v", domain.ErrUpstream, err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if articles == nil {
		articles = []domain.NewsArticle{}
	}
	return articles, nil
}
