package news

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FeedSource describes one RSS/Atom feed to aggregate.
type FeedSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	MaxItems int    `yaml:"max_items"`
}

type feedSourceFile struct {
	Feeds []FeedSource `yaml:"feeds"`
}

const defaultMaxItems = 10

// DefaultFeedSources returns the built-in feed list used when no override
// files are configured.
func DefaultFeedSources() []FeedSource {
	return []FeedSource{
		{Name: "TechCrunch RSS", URL: "https://techcrunch.com/feed/", MaxItems: defaultMaxItems},
	}
}

// LoadFeedSources reads *.yml files from feedsDir and returns the combined
// feed list. An empty or missing directory falls back to the defaults.
func LoadFeedSources(feedsDir string) ([]FeedSource, error) {
	if feedsDir == "" {
		return DefaultFeedSources(), nil
	}

	if _, err := os.Stat(feedsDir); os.IsNotExist(err) {
		return DefaultFeedSources(), nil
	}

	files, err := filepath.Glob(filepath.Join(feedsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}

	var sources []FeedSource
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var parsed feedSourceFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		for _, src := range parsed.Feeds {
			if src.URL == "" {
				return nil, fmt.Errorf("feed source without url in %s", file)
			}
			src.Name = cmp.Or(src.Name, src.URL)
			if src.MaxItems <= 0 {
				src.MaxItems = defaultMaxItems
			}
			sources = append(sources, src)
		}
	}

	if len(sources) == 0 {
		return DefaultFeedSources(), nil
	}

	return sources, nil
}
