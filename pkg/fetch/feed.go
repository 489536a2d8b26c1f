package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/mmcdole/gofeed"

	"github.com/ventradar/ventradar/pkg/insight"
)

// Feed watches the backend's RSS/Atom announcement feed. Each entry's GUID is
// an insight ID, resolved to a full record through the API client.
type Feed struct {
	parser *gofeed.Parser
	url    string
	client *Client
}

// NewFeed creates an announcement feed watcher.
func NewFeed(feedURL string, client *Client) *Feed {
	return &Feed{
		parser: gofeed.NewParser(),
		url:    feedURL,
		client: client,
	}
}

// Collect parses the feed and fetches every announced insight. Entries that
// fail to resolve are skipped, not fatal.
func (f *Feed) Collect(ctx context.Context) ([]insight.Insight, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.url, err)
	}

	var ins []insight.Insight
	for _, item := range feed.Items {
		id := item.GUID
		if id == "" {
			continue
		}

		in, err := f.client.GetInsight(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  feed entry %s: %v\n", id, err)
			continue
		}
		ins = append(ins, *in)
	}
	return ins, nil
}
