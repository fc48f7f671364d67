package news

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	articles []Article
	err      error
	calls    int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]Article, error) {
	f.calls++
	return f.articles, f.err
}

func TestAggregatorAllConcatenatesRSSFirst(t *testing.T) {
	rss := &fakeSource{articles: []Article{
		{Title: "rss-1", Link: "https://example.com/1"},
		{Title: "rss-2", Link: "https://example.com/2"},
	}}
	search := &fakeSource{articles: []Article{
		{Title: "api-1", Link: "https://example.com/3"},
	}}

	aggregator := NewAggregator(rss, search)
	articles, err := aggregator.Fetch(context.Background(), SelectorAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}

	expectedOrder := []string{"rss-1", "rss-2", "api-1"}
	for i, title := range expectedOrder {
		if articles[i].Title != title {
			t.Errorf("article %d: expected %q, got %q", i, title, articles[i].Title)
		}
	}
}

func TestAggregatorAllDegradesOnSearchFailure(t *testing.T) {
	rss := &fakeSource{articles: []Article{{Title: "rss-1", Link: "https://example.com/1"}}}
	search := &fakeSource{err: ErrRateLimited}

	aggregator := NewAggregator(rss, search)
	articles, err := aggregator.Fetch(context.Background(), SelectorAll)
	if err != nil {
		t.Fatalf("search failure should not fail the combined fetch: %v", err)
	}

	if len(articles) != 1 || articles[0].Title != "rss-1" {
		t.Errorf("expected only the RSS article, got %v", articles)
	}
}

func TestAggregatorSelectorDispatch(t *testing.T) {
	rss := &fakeSource{articles: []Article{{Title: "rss-1", Link: "https://example.com/1"}}}
	search := &fakeSource{articles: []Article{{Title: "api-1", Link: "https://example.com/2"}}}

	aggregator := NewAggregator(rss, search)

	articles, err := aggregator.Fetch(context.Background(), SelectorRSS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "rss-1" {
		t.Errorf("rss selector: expected only RSS articles, got %v", articles)
	}
	if search.calls != 0 {
		t.Errorf("rss selector should not touch the search adapter, got %d calls", search.calls)
	}

	articles, err = aggregator.Fetch(context.Background(), SelectorNewsAPI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "api-1" {
		t.Errorf("newsapi selector: expected only search articles, got %v", articles)
	}
}

func TestAggregatorNewsAPISelectorPropagatesError(t *testing.T) {
	rss := &fakeSource{}
	search := &fakeSource{err: ErrInvalidAPIKey}

	aggregator := NewAggregator(rss, search)
	_, err := aggregator.Fetch(context.Background(), SelectorNewsAPI)
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestAggregatorEmptyResultIsError(t *testing.T) {
	aggregator := NewAggregator(&fakeSource{}, &fakeSource{})

	_, err := aggregator.Fetch(context.Background(), SelectorAll)
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
}

func TestAggregatorUnknownSelectorFallsBackToAll(t *testing.T) {
	rss := &fakeSource{articles: []Article{{Title: "rss-1", Link: "https://example.com/1"}}}
	search := &fakeSource{articles: []Article{{Title: "api-1", Link: "https://example.com/2"}}}

	aggregator := NewAggregator(rss, search)
	articles, err := aggregator.Fetch(context.Background(), "bogus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("expected both sources for unknown selector, got %d articles", len(articles))
	}
}
