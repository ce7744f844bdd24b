package domain

import "time"

// Topic is a candidate trend item pulled from an upstream feed.
// ID is assigned by the source and must stay stable across runs for
// the same underlying item; it is the idempotency key of the whole
// pipeline.
type Topic struct {
	ID      string
	Title   string
	Content string
	URL     string

	// Enrichment added by the ranker; empty when the judge was
	// unavailable and the first candidate was used as-is.
	AnalysisReason string
	TargetKeywords string
	CompareA       string
	CompareB       string
}

// ParsedArticle holds the structured fields extracted from the
// generator's free-text output. Every field may be empty; keywords
// fall back to the first two title tokens during parsing.
type ParsedArticle struct {
	Title       string
	Summary     string
	Body        string
	ImagePrompt string
	Keywords    string
}

// AffiliateItem is a single product listing attached to a post.
// Fetched per publish and rendered inline; never persisted on its own.
type AffiliateItem struct {
	Name  string
	Price string
	Link  string
	Image string
}

// PublicationRecord is one row of the append-only idempotency ledger.
// Its existence is the sole "already handled" signal for a topic.
type PublicationRecord struct {
	TopicID     string
	Title       string
	ProcessedAt time.Time
	Destination string
}

// Publication bundles everything a content sink needs to write one
// finished post.
type Publication struct {
	TopicID   string
	Category  string
	Article   ParsedArticle
	ImagePath string
	Items     []AffiliateItem
	Date      time.Time
}
