package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	// Reddit body snippets shorter than this carry no signal; the
	// title substitutes.
	minContentRunes = 20

	// Fallback-derived IDs are truncated slugs; near-duplicate titles
	// can collide across runs. Known limitation, kept as-is.
	fallbackIDLen = 15
)

var nonAlnumExpr = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FeedSource fetches candidate topics from old.reddit.com, falling
// back to a Google News RSS search when Reddit is unreachable. It
// never returns an error: both feeds failing yields an empty slice.
type FeedSource struct {
	parser     *gofeed.Parser
	logger     *slog.Logger
	redditBase string
	newsBase   string
}

var _ ports.TopicSource = (*FeedSource)(nil)

// NewFeedSource wires an HTTP client; a nil client gets a bounded
// default timeout.
func NewFeedSource(client *http.Client, logger *slog.Logger) *FeedSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &FeedSource{
		parser:     parser,
		logger:     logger,
		redditBase: "https://old.reddit.com",
		newsBase:   "https://news.google.com",
	}
}

// FetchCandidates returns up to limit topics for a category,
// most-recent-first. The category doubles as a subreddit name for the
// primary feed and as a search keyword for the fallback.
func (s *FeedSource) FetchCandidates(ctx context.Context, category string, limit int) []domain.Topic {
	redditURL := fmt.Sprintf("%s/r/%s/top/.rss?t=day", s.redditBase, category)

	feed, err := s.parser.ParseURLWithContext(redditURL, ctx)
	if err == nil {
		topics := s.redditTopics(feed, limit)
		s.debug("reddit fetch done", "category", category, "count", len(topics))
		return topics
	}
	s.debug("reddit fetch failed, switching to google news", "category", category, "error", err)

	newsURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		s.newsBase, url.QueryEscape(category+" latest"))

	feed, err = s.parser.ParseURLWithContext(newsURL, ctx)
	if err != nil {
		s.debug("all feed sources failed", "category", category, "error", err)
		return nil
	}

	topics := newsTopics(feed, limit)
	s.debug("google news fetch done", "category", category, "count", len(topics))
	return topics
}

func (s *FeedSource) redditTopics(feed *gofeed.Feed, limit int) []domain.Topic {
	topics := make([]domain.Topic, 0, limit)
	for _, item := range feed.Items {
		if len(topics) >= limit {
			break
		}

		content := htmlToText(item.Content)
		if len([]rune(content)) < minContentRunes {
			content = item.Title
		}

		topics = append(topics, domain.Topic{
			ID:      lastSegment(item.GUID),
			Title:   item.Title,
			Content: content,
			URL:     item.Link,
		})
	}
	return topics
}

func newsTopics(feed *gofeed.Feed, limit int) []domain.Topic {
	topics := make([]domain.Topic, 0, limit)
	for _, item := range feed.Items {
		if len(topics) >= limit {
			break
		}

		topics = append(topics, domain.Topic{
			ID:      fallbackID(item.Title),
			Title:   item.Title,
			Content: fmt.Sprintf("Global Trend News: %s. Source: %s", item.Title, item.Link),
			URL:     item.Link,
		})
	}
	return topics
}

// fallbackID derives a deterministic ID for feeds that publish no
// stable identifier: the title stripped to alphanumerics, truncated.
func fallbackID(title string) string {
	slug := nonAlnumExpr.ReplaceAllString(title, "")
	if len(slug) > fallbackIDLen {
		slug = slug[:fallbackIDLen]
	}
	return slug
}

func lastSegment(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(doc.Text())
}

func (s *FeedSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
