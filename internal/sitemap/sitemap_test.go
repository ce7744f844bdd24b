package sitemap

import (
	"strings"
	"testing"
)

func TestRenderStaticAndCategoryPages(t *testing.T) {
	t.Parallel()

	xml := Render("https://example.dev", []string{"Gadgets", "Home Improvement"}, nil)

	for _, want := range []string{
		"<loc>https://example.dev/</loc>",
		"<loc>https://example.dev/popular</loc>",
		"<loc>https://example.dev/category/Gadgets</loc>",
		"<loc>https://example.dev/category/Home%20Improvement</loc>",
	} {
		if !strings.Contains(xml, want) {
			t.Fatalf("missing %s in:\n%s", want, xml)
		}
	}

	if !strings.HasPrefix(xml, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n") {
		t.Fatal("missing XML declaration")
	}
	if !strings.HasSuffix(xml, "</urlset>\n") {
		t.Fatal("unterminated urlset")
	}
}

func TestRenderArticleEntries(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Slug: "20250901-t3_abc123", CreatedAt: "2025-09-01 10:00:00"},
		{Slug: "20250830-weird slug", CreatedAt: "2025-08-30T08:00:00Z"},
		{Slug: "20250829-nodate", CreatedAt: ""},
	}

	xml := Render("https://example.dev", nil, entries)

	if !strings.Contains(xml, "<loc>https://example.dev/blog/20250901-t3_abc123</loc>") {
		t.Fatalf("missing article loc:\n%s", xml)
	}
	if !strings.Contains(xml, "<lastmod>2025-09-01</lastmod>") {
		t.Fatal("space-separated timestamp not reduced to date")
	}
	if !strings.Contains(xml, "<lastmod>2025-08-30</lastmod>") {
		t.Fatal("T-separated timestamp not reduced to date")
	}
	if !strings.Contains(xml, "20250830-weird+slug") {
		t.Fatal("slug not query-escaped")
	}
	if strings.Count(xml, "<lastmod>") != 2 {
		t.Fatal("entry without timestamp must omit lastmod")
	}
}

func TestDatePart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-01 10:00:00", "2025-09-01"},
		{"2025-09-01T10:00:00Z", "2025-09-01"},
		{"2025-09-01", "2025-09-01"},
		{"  2025-09-01 ", "2025-09-01"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := datePart(tt.in); got != tt.want {
			t.Fatalf("datePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
