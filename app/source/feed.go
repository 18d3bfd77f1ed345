package source

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedParser turns an RSS, Atom or JSON Feed document into a bare record
// sequence keyed the way the canonicalizer expects.
type FeedParser struct {
	gofeedParser *gofeed.Parser
}

func NewFeedParser() *FeedParser {
	return &FeedParser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *FeedParser) Run(data []byte) ([]any, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	records := make([]any, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		records = append(records, p.normalizeItem(item))
	}

	return records, nil
}

func (p *FeedParser) normalizeItem(item *gofeed.Item) map[string]any {
	record := map[string]any{
		"id":          cmp.Or(item.GUID, item.Link),
		"title":       item.Title,
		"description": item.Description,
		"content":     item.Content,
		"link":        item.Link,
	}

	if author := p.extractAuthor(item); author != "" {
		record["author"] = author
	}

	if item.PublishedParsed != nil {
		record["publishedAt"] = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		record["publishedAt"] = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	if len(item.Categories) > 0 {
		tags := make([]any, 0, len(item.Categories))
		for _, c := range item.Categories {
			tags = append(tags, c)
		}
		record["tags"] = tags
	}

	if item.Image != nil && item.Image.URL != "" {
		record["imageUrl"] = item.Image.URL
	}

	// RSS 2.0 allows one enclosure per item; Atom may carry several.
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		switch {
		case strings.HasPrefix(enclosure.Type, "image/"):
			if _, ok := record["imageUrl"]; !ok {
				record["imageUrl"] = enclosure.URL
			}
		case strings.HasPrefix(enclosure.Type, "video/"):
			if _, ok := record["videoUrl"]; !ok {
				record["videoUrl"] = enclosure.URL
			}
		}
	}

	return record
}

func (p *FeedParser) extractAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 {
		for _, author := range item.Authors {
			if author != nil {
				if name := p.formatAuthor(author.Name, author.Email); name != "" {
					return name
				}
			}
		}
	} else if item.Author != nil {
		return p.formatAuthor(item.Author.Name, item.Author.Email)
	}

	return ""
}

func (p *FeedParser) formatAuthor(name, email string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	return cmp.Or(name, email)
}
