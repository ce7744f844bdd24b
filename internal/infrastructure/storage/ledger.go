package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const createLedgerTable = `CREATE TABLE IF NOT EXISTS posts (
	topic_id TEXT PRIMARY KEY,
	title TEXT,
	processed_date TEXT,
	file_path TEXT
)`

// Ledger is the local append-only idempotency store. A row's
// existence is the sole "already published" signal: no updates, no
// deletes. Recording must only happen after the content sink write
// succeeded; the reverse order would turn a crash into a permanently
// skipped topic.
type Ledger struct {
	db *sql.DB
}

var _ ports.PublicationLedger = (*Ledger)(nil)

// OpenLedger opens (and if needed creates) the sqlite database at
// path.
func OpenLedger(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if _, err := db.Exec(createLedgerTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// IsPublished reports whether a record exists for the topic. Absence
// means "eligible for processing", not "failed".
func (l *Ledger) IsPublished(ctx context.Context, topicID string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE topic_id = ?`, topicID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return true, nil
}

// Record appends the publication record with insert-or-ignore
// semantics: a duplicate topic ID neither fails nor overwrites.
func (l *Ledger) Record(ctx context.Context, rec domain.PublicationRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO posts (topic_id, title, processed_date, file_path) VALUES (?, ?, ?, ?)`,
		rec.TopicID, rec.Title, rec.ProcessedAt.Format("2006-01-02 15:04:05"), rec.Destination,
	)
	if err != nil {
		return fmt.Errorf("record publication: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}
