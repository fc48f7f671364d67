package news

import (
	"cmp"
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"
)

// RSSAdapter fetches articles from the configured RSS/Atom feeds. Feed
// failures degrade to an empty result instead of surfacing to the caller.
type RSSAdapter struct {
	sources    []FeedSource
	parser     *gofeed.Parser
	summarizer Summarizer
}

func NewRSSAdapter(sources []FeedSource, userAgent string, summarizer Summarizer) *RSSAdapter {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &RSSAdapter{
		sources:    sources,
		parser:     parser,
		summarizer: summarizer,
	}
}

func (a *RSSAdapter) Fetch(ctx context.Context) ([]Article, error) {
	articles := make([]Article, 0, defaultMaxItems*len(a.sources))

	for _, src := range a.sources {
		feed, err := a.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			slog.Error("Failed to fetch RSS feed", "feed", src.Name, "url", src.URL, "error", err)
			continue
		}

		articles = append(articles, a.mapItems(ctx, src, feed.Items)...)
	}

	return articles, nil
}

func (a *RSSAdapter) mapItems(ctx context.Context, src FeedSource, items []*gofeed.Item) []Article {
	articles := make([]Article, 0, src.MaxItems)

	for _, item := range items {
		if len(articles) >= src.MaxItems {
			break
		}
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}

		summary := cmp.Or(item.Description, item.Content, NoDescription)

		articles = append(articles, Article{
			Title:       item.Title,
			Link:        item.Link,
			Published:   item.Published,
			Summary:     summary,
			Source:      src.Name,
			KeyTakeaway: takeawayFor(ctx, a.summarizer, item.Title, summary),
		})
	}

	return articles
}
