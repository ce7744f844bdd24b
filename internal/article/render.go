package article

import (
	"fmt"
	"strings"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

// Render produces the front-matter markdown document written by the
// file sink: a fixed front-matter block, the thumbnail, a summary
// section, the body, and an affiliate section when items exist.
func Render(pub domain.Publication) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", pub.Article.Title)
	fmt.Fprintf(&b, "summary: %q\n", pub.Article.Summary)
	fmt.Fprintf(&b, "image: %q\n", pub.ImagePath)
	fmt.Fprintf(&b, "category: %q\n", pub.Category)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "![Thumbnail](%s)\n\n", pub.ImagePath)
	fmt.Fprintf(&b, "## Key Takeaways\n%s\n\n", pub.Article.Summary)
	fmt.Fprintf(&b, "%s\n\n", pub.Article.Body)

	if len(pub.Items) > 0 {
		b.WriteString("\n---\n### Recommended Picks\n")
		for _, item := range pub.Items {
			fmt.Fprintf(&b, "- **[%s](%s)** (%s)\n", item.Name, item.Link, item.Price)
		}
		b.WriteString("\n\n*This post contains affiliate links; qualifying purchases support the site at no extra cost to you.*\n")
	}

	return b.String()
}
