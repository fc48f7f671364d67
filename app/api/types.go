package api

import (
	"context"

	"techpulse/app/auth"
	"techpulse/app/database"
	"techpulse/app/news"
)

// ArticleFetcher is the aggregator seam; faked in handler tests.
type ArticleFetcher interface {
	Fetch(ctx context.Context, selector string) ([]news.Article, error)
}

// Assistant is the completion-service seam used by the ask and writer
// endpoints.
type Assistant interface {
	Ask(ctx context.Context, question, title, summary string) (string, error)
	WriteArticle(ctx context.Context, topic string) (string, error)
}

// ContentEnricher fills full article text on demand.
type ContentEnricher interface {
	Enrich(ctx context.Context, articles []news.Article) []news.Article
}

type Handler struct {
	aggregator ArticleFetcher
	extractor  ContentEnricher
	assistant  Assistant
	auth       *auth.Service
	updates    database.UpdateRepository
}

type askRequest struct {
	Question string `json:"question"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
}

type generateArticleRequest struct {
	Topic string `json:"topic"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUpdateRequest struct {
	Company   string `json:"company"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SourceURL string `json:"source_url"`
}
