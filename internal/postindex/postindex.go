package postindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS published_posts (
    video_id   TEXT PRIMARY KEY,
    filename   TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    language   TEXT NOT NULL DEFAULT '',
    category   TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_published_posts_category ON published_posts(category);
`

// Record is one published post known to the index.
type Record struct {
	VideoID   string
	Filename  string
	Title     string
	Language  string
	Category  string
	CreatedAt time.Time
}

// Store is a SQLite-backed index of published posts keyed by video ID. It is
// an advisory cache over the content directory: the directory scan remains
// the source of truth and the index only short-circuits duplicate checks.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure index dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts a published post.
func (s *Store) Record(ctx context.Context, rec Record) error {
	if rec.VideoID == "" || rec.Filename == "" {
		return errors.New("postindex record: video id and filename required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO published_posts (video_id, filename, title, language, category, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET
             filename = excluded.filename,
             title = excluded.title,
             language = excluded.language,
             category = excluded.category`,
		rec.VideoID, rec.Filename, rec.Title, rec.Language, rec.Category,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("postindex record %s: %w", rec.VideoID, err)
	}
	return nil
}

// Lookup returns the filename recorded for a video ID, or ok=false when the
// index has never seen it.
func (s *Store) Lookup(ctx context.Context, videoID string) (string, bool, error) {
	var filename string
	err := s.db.QueryRowContext(ctx,
		"SELECT filename FROM published_posts WHERE video_id = ?", videoID,
	).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postindex lookup %s: %w", videoID, err)
	}
	return filename, true, nil
}

// Forget removes a video from the index. Used when a duplicate check finds
// the recorded file no longer exists on disk.
func (s *Store) Forget(ctx context.Context, videoID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM published_posts WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("postindex forget %s: %w", videoID, err)
	}
	return nil
}

// All returns every record, newest first.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT video_id, filename, title, language, category, created_at
         FROM published_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("postindex list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(&rec.VideoID, &rec.Filename, &rec.Title, &rec.Language, &rec.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("postindex scan: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
