package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

// PostgresSink inserts posts into the remote relational store backing
// the site. The slug ({date}-{topicID}) is the row's public locator.
type PostgresSink struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ContentSink = (*PostgresSink)(nil)

// NewPostgresSink wires a sql.DB implementation.
func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// OpenPostgres dials the remote store.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Write inserts the rendered post row and returns its slug.
func (s *PostgresSink) Write(ctx context.Context, pub domain.Publication) (string, error) {
	slug := fmt.Sprintf("%s-%s", pub.Date.Format("20060102"), pub.TopicID)

	query, args, err := s.builder.
		Insert("posts").
		Columns("slug", "title", "summary", "content", "category", "image_url").
		Values(slug, pub.Article.Title, pub.Article.Summary, pub.Article.Body, pub.Category, pub.ImagePath).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}

	return slug, nil
}

// PublishedSlug pairs a slug with its stored creation timestamp; used
// by the sitemap utility.
type PublishedSlug struct {
	Slug      string
	CreatedAt string
}

// ListPublishedSlugs reads all post slugs and dates, newest first.
func ListPublishedSlugs(ctx context.Context, db *sql.DB) ([]PublishedSlug, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := builder.
		Select("slug", "COALESCE(created_at::text, '')").
		From("posts").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query slugs: %w", err)
	}
	defer rows.Close()

	var slugs []PublishedSlug
	for rows.Next() {
		var s PublishedSlug
		if err := rows.Scan(&s.Slug, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return slugs, nil
}
