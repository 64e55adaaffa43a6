package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

const (
	// FeedSourceName is the fallback label when a feed has no title.
	FeedSourceName = "Feed"

	DefaultFeedLimit = 30
)

// FeedSource reads an RSS/Atom feed as an additional headlines source. It is
// optional: the engine runs with the two API sources when no feed URL is
// configured.
type FeedSource struct {
	feedURL string
	limit   int
	parser  *gofeed.Parser
}

func NewFeedSource(feedURL string, limit int) *FeedSource {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &FeedSource{
		feedURL: strings.TrimSpace(feedURL),
		limit:   limit,
		parser:  gofeed.NewParser(),
	}
}

func (s *FeedSource) Name() string {
	return FeedSourceName
}

// FetchCandidates ignores the query and returns the feed's current items.
// Items without a usable title are dropped.
func (s *FeedSource) FetchCandidates(ctx context.Context, _ string) ([]Candidate, error) {
	if s == nil || strings.TrimSpace(s.feedURL) == "" {
		return nil, fmt.Errorf("feed source has no URL configured")
	}

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	sourceName := strings.TrimSpace(feed.Title)
	if sourceName == "" {
		sourceName = FeedSourceName
	}

	count := len(feed.Items)
	if count > s.limit {
		count = s.limit
	}

	candidates := make([]Candidate, 0, count)
	for _, item := range feed.Items[:count] {
		headline := strings.TrimSpace(item.Title)
		if headline == "" {
			headline = strings.TrimSpace(item.Description)
		}
		if headline == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Source:   sourceName,
			Headline: headline,
			URL:      strings.TrimSpace(item.Link),
		})
	}
	return candidates, nil
}
