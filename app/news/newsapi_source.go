package news

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
)

var (
	ErrInvalidAPIKey = errors.New("news search provider rejected the API key")
	ErrRateLimited   = errors.New("news search provider rate limit exceeded")
)

// UpstreamError reports a transport or payload failure from the news search
// provider that is not one of the sentinel cases above.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("news search provider returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("news search provider error: %s", e.Message)
}

// NewsAPIAdapter fetches technology headlines from a NewsAPI-compatible
// endpoint and classifies each result.
type NewsAPIAdapter struct {
	endpoint   string
	apiKey     string
	pageSize   int
	client     *http.Client
	summarizer Summarizer
}

func NewNewsAPIAdapter(endpoint, apiKey string, summarizer Summarizer) *NewsAPIAdapter {
	return &NewsAPIAdapter{
		endpoint:   endpoint,
		apiKey:     apiKey,
		pageSize:   10,
		client:     &http.Client{Timeout: 30 * time.Second},
		summarizer: summarizer,
	}
}

type newsAPISource struct {
	Name string `json:"name"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

func (a *NewsAPIAdapter) Fetch(ctx context.Context) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news search request: %w", err)
	}

	params := url.Values{}
	params.Set("apiKey", a.apiKey)
	params.Set("category", "technology")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", a.pageSize))
	req.URL.RawQuery = params.Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidAPIKey
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "unexpected status"}
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("malformed response: %s", err)}
	}

	if payload.Status != "ok" {
		return nil, &UpstreamError{Message: cmp.Or(payload.Message, payload.Code, "unknown provider error")}
	}

	articles := lo.FilterMap(payload.Articles, func(item newsAPIArticle, _ int) (Article, bool) {
		if item.Title == "" || item.URL == "" {
			return Article{}, false
		}

		summary := cmp.Or(item.Description, NoDescription)

		return Article{
			Title:       item.Title,
			Link:        item.URL,
			Published:   item.PublishedAt,
			Summary:     summary,
			Source:      fmt.Sprintf("News API - %s", cmp.Or(item.Source.Name, "Unknown")),
			Category:    Classify(item.Title, item.Description),
			KeyTakeaway: takeawayFor(ctx, a.summarizer, item.Title, summary),
		}, true
	})

	return articles, nil
}
