package llm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

var (
	winnerExpr   = regexp.MustCompile(`WINNER_INDEX:\s*(\d+)`)
	reasonExpr   = regexp.MustCompile(`(?m)REASON:\s*(.*)$`)
	keywordsExpr = regexp.MustCompile(`(?m)TARGET_KEYWORDS:\s*(.*)$`)
	compareAExpr = regexp.MustCompile(`(?m)COMPARE_A:\s*(.*)$`)
	compareBExpr = regexp.MustCompile(`(?m)COMPARE_B:\s*(.*)$`)
)

// Ranker asks an OpenAI-compatible judge to pick the candidate best
// suited for a comparison article. Any judge failure falls back to
// the first candidate unmodified; the pipeline is never blocked on
// ranking.
type Ranker struct {
	model  llms.Model
	logger *slog.Logger
}

var _ ports.TopicRanker = (*Ranker)(nil)

// NewRanker builds the judge client from configuration.
func NewRanker(cfg config.RankerConfig, logger *slog.Logger) (*Ranker, error) {
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("init judge client: %w", err)
	}
	return &Ranker{model: model, logger: logger}, nil
}

// Rank returns a one-element slice with the selected topic. The
// judge's index is untrusted input: out-of-range values are clamped
// to 0 rather than rejected.
func (r *Ranker) Rank(ctx context.Context, candidates []domain.Topic) []domain.Topic {
	if len(candidates) == 0 {
		return nil
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, r.model, buildJudgePrompt(candidates),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		r.warn("judge call failed, using first candidate", "error", err)
		return candidates[:1]
	}

	selected, ok := applyJudgment(raw, candidates)
	if !ok {
		r.warn("judge response missing winner index, using first candidate")
		return candidates[:1]
	}

	r.debug("judge selected topic", "title", selected.Title, "compare_a", selected.CompareA, "compare_b", selected.CompareB)
	return []domain.Topic{selected}
}

// applyJudgment parses the judge's labeled output and returns the
// enriched winner. A missing WINNER_INDEX reports !ok.
func applyJudgment(raw string, candidates []domain.Topic) (domain.Topic, bool) {
	match := winnerExpr.FindStringSubmatch(raw)
	if match == nil {
		return domain.Topic{}, false
	}

	idx, err := strconv.Atoi(match[1])
	if err != nil || idx < 0 || idx >= len(candidates) {
		idx = 0
	}

	winner := candidates[idx]
	winner.AnalysisReason = captureLine(reasonExpr, raw, "Selected for high comparison potential.")
	winner.TargetKeywords = captureLine(keywordsExpr, raw, "")
	winner.CompareA = captureLine(compareAExpr, raw, "")
	winner.CompareB = captureLine(compareBExpr, raw, "")
	return winner, true
}

func captureLine(expr *regexp.Regexp, raw, fallback string) string {
	if match := expr.FindStringSubmatch(raw); match != nil {
		if v := strings.TrimSpace(match[1]); v != "" {
			return v
		}
	}
	return fallback
}

func buildJudgePrompt(candidates []domain.Topic) string {
	var topics strings.Builder
	for i, topic := range candidates {
		fmt.Fprintf(&topics, "[%d] Title: %s\n", i, topic.Title)
	}

	return fmt.Sprintf(`You are a top-tier SEO strategist.
Your goal: find the topic BEST suited for an "A vs B" comparison article that will rank high on search engines.

[Selection Criteria]
1. Comparison Potential: Can we extract TWO comparable products, methods, or technologies from this topic?
2. Search Intent: readers actively search "A vs B", "A B comparison", "A B difference" for this topic.
3. Content Gap: lack of quality comparison content on this topic.
4. Profitability: links well to affiliate products (both A and B sides).
5. E-E-A-T: we can provide expert-level comparison with data.

[Topics List]
%s
[Output Format - STRICT]
WINNER_INDEX: [Index Number]
REASON: [Short analysis of why this is the best comparison topic]
COMPARE_A: [First item/product/method to compare]
COMPARE_B: [Second item/product/method to compare]
TARGET_KEYWORDS: [3 comparison-focused long-tail keywords, comma separated, must include "vs" or "comparison"]
`, topics.String())
}

func (r *Ranker) warn(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Ranker) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
