package article

import (
	"strings"
	"testing"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

func TestParseWellFormed(t *testing.T) {
	t.Parallel()

	raw := `VS_TITLE: AirPods Pro vs Galaxy Buds
---
TITLE: AirPods Pro vs Galaxy Buds: key differences
---
SUMMARY: Both are strong, but they target different ears.
---
CONTENT: ## Introduction
Long body with a table.

| axis | A | B |
---
IMAGE_PROMPT: two earbuds side by side, studio light
---
KEYWORDS: airpods vs buds, earbuds comparison`

	parsed := Parse(raw)

	if parsed.Title != "AirPods Pro vs Galaxy Buds: key differences" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
	if parsed.Summary != "Both are strong, but they target different ears." {
		t.Fatalf("unexpected summary: %q", parsed.Summary)
	}
	if !strings.HasPrefix(parsed.Body, "## Introduction") {
		t.Fatalf("unexpected body: %q", parsed.Body)
	}
	if parsed.ImagePrompt != "two earbuds side by side, studio light" {
		t.Fatalf("unexpected image prompt: %q", parsed.ImagePrompt)
	}
	if parsed.Keywords != "airpods vs buds, earbuds comparison" {
		t.Fatalf("unexpected keywords: %q", parsed.Keywords)
	}
}

func TestParseIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"no markers at all",
		"---\n---\n---",
		"KEYWORDS: only keywords here",
		strings.Repeat("-", 500),
	}

	for _, raw := range inputs {
		parsed := Parse(raw)
		_ = parsed // all fields defined, possibly empty; must not panic
	}
}

func TestParseMarkersInAnyOrder(t *testing.T) {
	t.Parallel()

	raw := "KEYWORDS: z vs y\nCONTENT: body text\nSUMMARY: short\nTITLE: Z vs Y"
	parsed := Parse(raw)

	if parsed.Title != "Z vs Y" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
	if parsed.Summary != "short" {
		t.Fatalf("unexpected summary: %q", parsed.Summary)
	}
	if parsed.Body != "body text" {
		t.Fatalf("unexpected body: %q", parsed.Body)
	}
	if parsed.Keywords != "z vs y" {
		t.Fatalf("unexpected keywords: %q", parsed.Keywords)
	}
}

func TestParseKeywordFallbackFromTitle(t *testing.T) {
	t.Parallel()

	parsed := Parse("TITLE: Alpha Beta Gamma\n---\nCONTENT: body")

	if parsed.Keywords != "Alpha Beta" {
		t.Fatalf("expected title-derived keywords %q, got %q", "Alpha Beta", parsed.Keywords)
	}
}

func TestParseVSTitleDoesNotLeakIntoTitle(t *testing.T) {
	t.Parallel()

	raw := "VS_TITLE: A vs B\n---\nTITLE: real title"
	parsed := Parse(raw)

	if parsed.Title != "real title" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
}

func TestFirstKeyword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"[vitamin d, vitamin k]", "vitamin d"},
		{"  , second one ", "second one"},
		{"", ""},
		{" , , ", ""},
	}

	for _, tc := range cases {
		if got := FirstKeyword(tc.in); got != tc.want {
			t.Fatalf("FirstKeyword(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFirstWords(t *testing.T) {
	t.Parallel()

	if got := FirstWords("one two three", 2); got != "one two" {
		t.Fatalf("unexpected result: %q", got)
	}
	if got := FirstWords("one", 3); got != "one" {
		t.Fatalf("unexpected result: %q", got)
	}
	if got := FirstWords("", 2); got != "" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestRenderIncludesAffiliateSection(t *testing.T) {
	t.Parallel()

	pub := domain.Publication{
		Category:  "Gadgets",
		ImagePath: "/images/thumb_g1.png",
		Article: domain.ParsedArticle{
			Title:   "A vs B",
			Summary: "summary",
			Body:    "body",
		},
		Items: []domain.AffiliateItem{
			{Name: "Widget", Price: "9900", Link: "https://shop.example/widget"},
		},
	}

	out := Render(pub)

	for _, want := range []string{
		"title: \"A vs B\"",
		"category: \"Gadgets\"",
		"![Thumbnail](/images/thumb_g1.png)",
		"### Recommended Picks",
		"[Widget](https://shop.example/widget)",
		"affiliate links",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered post missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSkipsAffiliateSectionWhenEmpty(t *testing.T) {
	t.Parallel()

	out := Render(domain.Publication{Article: domain.ParsedArticle{Title: "t"}})
	if strings.Contains(out, "Recommended Picks") {
		t.Fatalf("unexpected affiliate section:\n%s", out)
	}
}
