package news

import "context"

// NoDescription is the fallback summary for upstream entries without one.
const NoDescription = "No description available"

// Article is a normalized news item. Articles are built per request and
// never persisted.
type Article struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Published   string   `json:"published"`
	Summary     string   `json:"summary"`
	FullContent string   `json:"full_content,omitempty"`
	Source      string   `json:"source"`
	Category    Category `json:"category,omitempty"`
	KeyTakeaway *string  `json:"key_takeaway"`
}

// Category is a fixed classification label for an article.
type Category string

const (
	CategoryAI            Category = "AI & Machine Learning"
	CategoryStartups      Category = "Startups"
	CategoryCybersecurity Category = "Cybersecurity"
	CategoryHardware      Category = "Hardware"
	CategorySoftwareDev   Category = "Software Development"
	CategoryOther         Category = "Other Tech"
)

// Summarizer produces a one-line takeaway for an article. A failed call is
// recoverable: callers leave the takeaway absent instead of failing the
// article.
type Summarizer interface {
	Takeaway(ctx context.Context, title, summary string) (string, error)
}

// Source fetches articles from one external provider.
type Source interface {
	Fetch(ctx context.Context) ([]Article, error)
}
