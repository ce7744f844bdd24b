package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

// Generator writes the comparison article via the Anthropic messages
// API. Failures are reported as errors so the orchestrator can skip
// the topic; no retry happens at this layer.
type Generator struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

var _ ports.ArticleGenerator = (*Generator)(nil)

// NewGenerator builds a client from configuration.
func NewGenerator(cfg config.GeneratorConfig) *Generator {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &Generator{
		client:    &client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
	}
}

// Generate returns the model's raw labeled output for one topic.
func (g *Generator) Generate(ctx context.Context, topic domain.Topic, trendContext string) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildWriterPrompt(topic, trendContext))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate article: %w", err)
	}

	if len(resp.Content) == 0 || strings.TrimSpace(resp.Content[0].Text) == "" {
		return "", fmt.Errorf("generate article: empty response")
	}

	return resp.Content[0].Text, nil
}

func buildWriterPrompt(topic domain.Topic, trendContext string) string {
	var compareBlock string
	if topic.CompareA != "" && topic.CompareB != "" {
		compareBlock = fmt.Sprintf("\n[Comparison Pair]\nA: %s\nB: %s\n", topic.CompareA, topic.CompareB)
	}

	var trendBlock string
	if trendContext != "" {
		trendBlock = fmt.Sprintf("\n[Reference: current market interest and trends]\n%s\n", trendContext)
	}

	return fmt.Sprintf(`You are a professional comparison analyst with 10+ years of domain experience.
Write the definitive "A vs B" comparison article a reader searching that phrase would want to find first.

[Source Data]
Title: %s
Key content: %s
Trend keywords: %s
Selection reason: %s
%s%s
[Writing Principles]
1. **Title format:** always "A vs B: key differences and buying guide" style; the comparison pair must be explicit.
2. **Objective comparison:** data and specs, not opinions. Include a markdown table per comparison axis.
3. **Structured body:** intro (why this comparison matters), at-a-glance table, detailed per-axis analysis, and a conclusion recommending A or B per reader profile.
4. **SEO keywords woven in naturally:** "A vs B", "A B comparison", "A B difference".
5. **Tone:** authoritative but easy to read; at most one emoji per section.

[Body Structure - follow exactly]
## Introduction
## At-a-Glance Comparison
## Detailed Analysis
### Axis 1
### Axis 2
### Axis 3
## Conclusion: Which One Is Right for You?

[Output Format - follow exactly]
VS_TITLE: [the comparison pair, e.g. "AirPods Pro vs Galaxy Buds"]
---
TITLE: [A vs B: subtitle-style headline]
---
SUMMARY: [2-3 sentence comparison takeaway]
---
CONTENT: [body markdown including the comparison tables]
---
IMAGE_PROMPT: [a clean professional photo prompt showing the two subjects side by side]
---
KEYWORDS: [search-intent keywords such as "A vs B", "A B comparison", comma separated]
`,
		topic.Title, topic.Content, topic.TargetKeywords, topic.AnalysisReason,
		compareBlock, trendBlock)
}
