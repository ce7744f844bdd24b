package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dorisurararara-crypto/auto-blog/internal/article"
	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const maxTitleLen = 50

var unsafePathExpr = regexp.MustCompile(`[\\/:*?"<>|]`)

// FileSink writes posts as front-matter markdown files into the
// static site's content directory.
type FileSink struct {
	contentDir string
}

var _ ports.ContentSink = (*FileSink)(nil)

// NewFileSink targets the given content directory.
func NewFileSink(contentDir string) *FileSink {
	return &FileSink{contentDir: contentDir}
}

// Write renders the publication and stores it under
// {contentDir}/{YYYYMMDD}_{sanitizedTitle}.md, returning the path.
func (s *FileSink) Write(ctx context.Context, pub domain.Publication) (string, error) {
	if err := os.MkdirAll(s.contentDir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	title := pub.Article.Title
	if title == "" {
		title = "no_title"
	}

	filename := fmt.Sprintf("%s_%s.md", pub.Date.Format("20060102"), SanitizeTitle(title))
	path := filepath.Join(s.contentDir, filename)

	if err := os.WriteFile(path, []byte(article.Render(pub)), 0o644); err != nil {
		return "", fmt.Errorf("write post file: %w", err)
	}

	return path, nil
}

// SanitizeTitle strips path-unsafe characters, converts spaces to
// underscores, and truncates to a fixed maximum length.
func SanitizeTitle(title string) string {
	title = unsafePathExpr.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, " ", "_")
	runes := []rune(title)
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return string(runes)
}
