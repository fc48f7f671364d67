package news

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor pulls readable article text out of a page so the news
// endpoint can serve full content on request.
type ContentExtractor struct {
	client    *http.Client
	userAgent string
}

func NewContentExtractor(userAgent string) *ContentExtractor {
	return &ContentExtractor{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
	}
}

func (e *ContentExtractor) Extract(data []byte, pageURL *url.URL) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.TextContent == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return article.TextContent, nil
}

// Enrich fills FullContent for each article by fetching its link. Extraction
// failures fall back to the article summary, then to the fixed sentinel;
// one article's failure never affects another.
func (e *ContentExtractor) Enrich(ctx context.Context, articles []Article) []Article {
	enriched := make([]Article, len(articles))

	for i, article := range articles {
		content, err := e.fetchAndExtract(ctx, article.Link)
		if err != nil {
			slog.Error("Content extraction failed", "link", article.Link, "error", err)
			content = cmp.Or(article.Summary, NoDescription)
		}

		article.FullContent = content
		enriched[i] = article
	}

	return enriched
}

func (e *ContentExtractor) fetchAndExtract(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid article link: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	return e.Extract(data, pageURL)
}
