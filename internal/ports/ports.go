package ports

import (
	"context"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

// TopicSource pulls candidate topics for a category from upstream
// feeds. Implementations swallow transport failures: both primary and
// fallback feeds failing yields an empty slice, never an error.
type TopicSource interface {
	FetchCandidates(ctx context.Context, category string, limit int) []domain.Topic
}

// TopicRanker selects the single best candidate and enriches it.
// Judge failures fall back to the first candidate unmodified, so the
// returned slice always has exactly one element for non-empty input.
type TopicRanker interface {
	Rank(ctx context.Context, candidates []domain.Topic) []domain.Topic
}

// TrendSearcher returns a short textual trend context for a keyword,
// or "" when no context could be built.
type TrendSearcher interface {
	Search(ctx context.Context, keyword string) string
}

// ArticleGenerator produces raw model output for one topic. An error
// means the topic is abandoned for this run; no retry happens here.
type ArticleGenerator interface {
	Generate(ctx context.Context, topic domain.Topic, trendContext string) (string, error)
}

// ImageSynthesizer renders a thumbnail for a prompt and returns its
// public path.
type ImageSynthesizer interface {
	Generate(ctx context.Context, prompt, filename string) (string, error)
}

// AffiliateSearcher looks up product listings for a keyword. Any
// upstream failure yields an empty slice.
type AffiliateSearcher interface {
	Search(ctx context.Context, keyword string, limit int) []domain.AffiliateItem
}

// PublicationLedger is the idempotency store. Record uses
// insert-or-ignore semantics: a duplicate topic ID must neither fail
// nor overwrite.
type PublicationLedger interface {
	IsPublished(ctx context.Context, topicID string) (bool, error)
	Record(ctx context.Context, rec domain.PublicationRecord) error
}

// ContentSink writes a finished publication and returns its
// destination (file path or store locator). The sink write always
// precedes the ledger record.
type ContentSink interface {
	Write(ctx context.Context, pub domain.Publication) (string, error)
}

// Deployer pushes published content out, e.g. via a git commit.
// Callers treat it as fire-and-forget.
type Deployer interface {
	Publish(ctx context.Context, message string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
