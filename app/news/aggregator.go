package news

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoArticles means every source came back empty. The HTTP layer maps it
// to a hard failure rather than serving an empty page.
var ErrNoArticles = errors.New("no articles available from any source")

// Selector values accepted by the news endpoint. Anything else is treated
// as SelectorAll.
const (
	SelectorRSS     = "rss"
	SelectorNewsAPI = "newsapi"
	SelectorAll     = "all"
)

// Aggregator merges articles from the RSS and news search adapters into a
// single result, RSS first.
type Aggregator struct {
	rss    Source
	search Source
}

func NewAggregator(rss, search Source) *Aggregator {
	return &Aggregator{rss: rss, search: search}
}

func (a *Aggregator) Fetch(ctx context.Context, selector string) ([]Article, error) {
	var articles []Article

	switch selector {
	case SelectorRSS:
		articles, _ = a.rss.Fetch(ctx)
	case SelectorNewsAPI:
		searched, err := a.search.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		articles = searched
	default:
		articles, _ = a.rss.Fetch(ctx)

		searched, err := a.search.Fetch(ctx)
		if err != nil {
			// One broken source must not take down the combined view.
			slog.Error("News search fetch failed, continuing with RSS only", "error", err)
		} else {
			articles = append(articles, searched...)
		}
	}

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	return articles, nil
}

func takeawayFor(ctx context.Context, s Summarizer, title, summary string) *string {
	if s == nil {
		return nil
	}

	takeaway, err := s.Takeaway(ctx, title, summary)
	if err != nil {
		slog.Error("Takeaway generation failed", "title", title, "error", err)
		return nil
	}

	return &takeaway
}
