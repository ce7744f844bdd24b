package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/storage"
	"github.com/dorisurararara-crypto/auto-blog/internal/logging"
	"github.com/dorisurararara-crypto/auto-blog/internal/sitemap"
)

const outputPath = "public/sitemap.xml"

// Standalone utility: reads every published slug from the remote
// store and regenerates the static sitemap. Runs after a pipeline
// pass or on its own.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := storage.OpenPostgres(cfg.Sink.PostgresDSN)
	if err != nil {
		logger.Error("connect remote store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slugs, err := storage.ListPublishedSlugs(ctx, db)
	if err != nil {
		logger.Error("list published slugs", "error", err)
		os.Exit(1)
	}

	entries := make([]sitemap.Entry, 0, len(slugs))
	for _, s := range slugs {
		entries = append(entries, sitemap.Entry{Slug: s.Slug, CreatedAt: s.CreatedAt})
	}

	xml := sitemap.Render(cfg.Site.BaseURL, cfg.Pipeline.Categories, entries)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		logger.Error("create output dir", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, []byte(xml), 0o644); err != nil {
		logger.Error("write sitemap", "error", err)
		os.Exit(1)
	}

	logger.Info("sitemap generated", "path", outputPath, "articles", len(entries))
}
