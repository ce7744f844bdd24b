package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/article"
	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const (
	defaultCandidateLimit = 5
	defaultAffiliateLimit = 3
	defaultImagePrompt    = "Professional high-quality photography"
	placeholderImagePath  = "/images/default_thumb.png"
)

// PipelineDeps wires all driven adapters into the orchestration
// pipeline. Ranker, Trends, Image, Affiliate, and Deployer may be nil;
// their stages then degrade per the error policy. Source, Ledger, and
// Sink are mandatory.
type PipelineDeps struct {
	Source    ports.TopicSource
	Ranker    ports.TopicRanker
	Trends    ports.TrendSearcher
	Generator ports.ArticleGenerator
	Image     ports.ImageSynthesizer
	Affiliate ports.AffiliateSearcher
	Ledger    ports.PublicationLedger
	Sink      ports.ContentSink
	Deployer  ports.Deployer
	Logger    *slog.Logger

	Categories     []string
	CandidateLimit int
	AffiliateLimit int
	Cooldown       time.Duration
}

// Pipeline implements the publish workflow: per category, one topic
// at most is taken from candidates through ranking, generation,
// parsing, enrichment, the sink write, and the ledger record. The
// sink write strictly precedes the record: a crash between the two
// re-attempts the publish on the next run instead of silently losing
// the topic forever.
type Pipeline struct {
	source    ports.TopicSource
	ranker    ports.TopicRanker
	trends    ports.TrendSearcher
	generator ports.ArticleGenerator
	image     ports.ImageSynthesizer
	affiliate ports.AffiliateSearcher
	ledger    ports.PublicationLedger
	sink      ports.ContentSink
	deployer  ports.Deployer
	logger    *slog.Logger

	categories     []string
	candidateLimit int
	affiliateLimit int
	cooldown       time.Duration
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.CandidateLimit <= 0 {
		deps.CandidateLimit = defaultCandidateLimit
	}
	if deps.AffiliateLimit <= 0 {
		deps.AffiliateLimit = defaultAffiliateLimit
	}

	return &Pipeline{
		source:         deps.Source,
		ranker:         deps.Ranker,
		trends:         deps.Trends,
		generator:      deps.Generator,
		image:          deps.Image,
		affiliate:      deps.Affiliate,
		ledger:         deps.Ledger,
		sink:           deps.Sink,
		deployer:       deps.Deployer,
		logger:         deps.Logger,
		categories:     deps.Categories,
		candidateLimit: deps.CandidateLimit,
		affiliateLimit: deps.AffiliateLimit,
		cooldown:       deps.Cooldown,
	}
}

// Run executes one full pass over all configured categories. Failures
// inside one category never abort the remaining ones.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	p.info("pipeline run started", "categories", len(p.categories))

	var failed int
	for _, category := range p.categories {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := p.processCategory(ctx, category, now); err != nil {
			failed++
			p.error("category processing failed", "category", category, "error", err)
		}
	}

	p.info("pipeline run finished", "failed_categories", failed)
	if failed == len(p.categories) && failed > 0 {
		return fmt.Errorf("all %d categories failed", failed)
	}
	return nil
}

// processCategory publishes at most one new post for a category.
func (p *Pipeline) processCategory(ctx context.Context, category string, now time.Time) error {
	candidates := p.source.FetchCandidates(ctx, category, p.candidateLimit)
	if len(candidates) == 0 {
		p.info("no candidates available", "category", category)
		return nil
	}

	fresh, err := p.filterPublished(ctx, candidates)
	if err != nil {
		return fmt.Errorf("filter published: %w", err)
	}
	if len(fresh) == 0 {
		p.info("nothing to do, all candidates already published", "category", category)
		return nil
	}

	topic := p.selectTopic(ctx, fresh)

	trendContext := ""
	if p.trends != nil {
		trendContext = p.trends.Search(ctx, article.FirstWords(topic.Title, 3))
	}

	raw, err := p.generator.Generate(ctx, topic, trendContext)
	if err != nil {
		// No record was written, so the topic stays eligible on the
		// next run. Other candidates are not retried within this run.
		p.warn("generation failed, abandoning topic", "category", category, "topic_id", topic.ID, "error", err)
		return nil
	}

	parsed := article.Parse(raw)

	pub := domain.Publication{
		TopicID:   topic.ID,
		Category:  category,
		Article:   parsed,
		ImagePath: p.synthesizeImage(ctx, parsed, topic),
		Items:     p.enrich(ctx, parsed),
		Date:      now,
	}

	destination, err := p.sink.Write(ctx, pub)
	if err != nil {
		// The idempotency boundary was not crossed: no record.
		return fmt.Errorf("write content: %w", err)
	}

	record := domain.PublicationRecord{
		TopicID:     topic.ID,
		Title:       parsed.Title,
		ProcessedAt: now,
		Destination: destination,
	}
	if err := p.ledger.Record(ctx, record); err != nil {
		// Without the record the next run publishes this topic again.
		return fmt.Errorf("record publication for %s: %w", topic.ID, err)
	}

	p.info("published", "category", category, "topic_id", topic.ID, "destination", destination)

	if p.deployer != nil {
		if err := p.deployer.Publish(ctx, "New post: "+parsed.Title); err != nil {
			p.warn("deployment push failed", "error", err)
		}
	}

	p.sleep(ctx, p.cooldown)
	return nil
}

func (p *Pipeline) filterPublished(ctx context.Context, candidates []domain.Topic) ([]domain.Topic, error) {
	fresh := make([]domain.Topic, 0, len(candidates))
	for _, topic := range candidates {
		published, err := p.ledger.IsPublished(ctx, topic.ID)
		if err != nil {
			return nil, err
		}
		if !published {
			fresh = append(fresh, topic)
		}
	}
	return fresh, nil
}

func (p *Pipeline) selectTopic(ctx context.Context, fresh []domain.Topic) domain.Topic {
	if p.ranker == nil {
		return fresh[0]
	}

	selected := p.ranker.Rank(ctx, fresh)
	if len(selected) == 0 {
		return fresh[0]
	}
	return selected[0]
}

func (p *Pipeline) synthesizeImage(ctx context.Context, parsed domain.ParsedArticle, topic domain.Topic) string {
	if p.image == nil {
		return placeholderImagePath
	}

	prompt := parsed.ImagePrompt
	if prompt == "" {
		prompt = defaultImagePrompt
	}

	path, err := p.image.Generate(ctx, prompt, "thumb_"+topic.ID+".png")
	if err != nil {
		p.warn("image synthesis failed, using placeholder", "topic_id", topic.ID, "error", err)
		return placeholderImagePath
	}
	return path
}

// enrich applies the two-stage affiliate policy: the first parsed
// keyword, then once more with a title-derived fallback. Empty after
// both means the post ships without an affiliate section.
func (p *Pipeline) enrich(ctx context.Context, parsed domain.ParsedArticle) []domain.AffiliateItem {
	if p.affiliate == nil {
		return nil
	}

	keyword := article.FirstKeyword(parsed.Keywords)
	items := p.affiliate.Search(ctx, keyword, p.affiliateLimit)
	if len(items) > 0 {
		return items
	}

	fallback := article.FirstWords(parsed.Title, 2)
	if fallback == "" || fallback == keyword {
		return nil
	}
	return p.affiliate.Search(ctx, fallback, p.affiliateLimit)
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
