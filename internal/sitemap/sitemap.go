package sitemap

import (
	"fmt"
	"net/url"
	"strings"
)

// Entry is one published article as the remote store knows it.
// CreatedAt is the stored timestamp text; only its date portion ends
// up in <lastmod>.
type Entry struct {
	Slug      string
	CreatedAt string
}

type staticPage struct {
	path       string
	changefreq string
	priority   string
}

// Render produces the sitemap XML: the fixed static pages, one
// category page per configured category, and one <url> per article.
func Render(site string, categories []string, entries []Entry) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")

	pages := []staticPage{
		{path: "/", changefreq: "daily", priority: "1.0"},
		{path: "/popular", changefreq: "daily", priority: "0.8"},
	}
	for _, category := range categories {
		pages = append(pages, staticPage{
			path:       "/category/" + url.PathEscape(category),
			changefreq: "daily",
			priority:   "0.7",
		})
	}

	for _, page := range pages {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s%s</loc>\n    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n",
			site, page.path, page.changefreq, page.priority)
	}

	for _, entry := range entries {
		lastmod := ""
		if date := datePart(entry.CreatedAt); date != "" {
			lastmod = fmt.Sprintf("\n    <lastmod>%s</lastmod>", date)
		}
		fmt.Fprintf(&b, "  <url>\n    <loc>%s/blog/%s</loc>%s\n    <changefreq>monthly</changefreq>\n    <priority>0.8</priority>\n  </url>\n",
			site, url.QueryEscape(entry.Slug), lastmod)
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

// datePart keeps the date portion of "YYYY-MM-DD HH:MM:SS"-style
// timestamps.
func datePart(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return ""
	}
	if idx := strings.IndexAny(ts, " T"); idx > 0 {
		return ts[:idx]
	}
	return ts
}
