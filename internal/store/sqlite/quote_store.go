// Package sqlite keeps quotes in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register driver

	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
)

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_expires_at ON quotes(expires_at);
`

var _ domain.QuoteStore = (*QuoteStore)(nil)

// QuoteStore implements domain.QuoteStore on SQLite.
type QuoteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*QuoteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close() // Close error less important than schema error
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &QuoteStore{
		db:  db,
		now: time.Now,
	}, nil
}

// Close closes the database.
func (s *QuoteStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces a quote that expires after ttl.
func (s *QuoteStore) Save(ctx context.Context, quote *domain.Quote, ttl time.Duration) error {
	if quote == nil {
		return errors.New("quote cannot be nil")
	}

	if quote.ID == "" {
		return errors.New("quote ID cannot be empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("invalid ttl: %s", ttl)
	}

	now := s.now()
	stored := *quote
	stored.ExpiresAt = now.Add(ttl).UTC()

	payload, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, status, payload, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			payload = excluded.payload,
			expires_at = excluded.expires_at`,
		stored.ID, string(stored.Status), payload, now.UnixNano(), stored.ExpiresAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store quote: %w", err)
	}

	return nil
}

// Get retrieves a quote by ID.
func (s *QuoteStore) Get(ctx context.Context, id string) (*domain.Quote, error) {
	var (
		status  string
		payload []byte
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT status, payload FROM quotes WHERE id = ? AND expires_at > ?`,
		id, s.now().UnixNano(),
	).Scan(&status, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuoteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	var quote domain.Quote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	quote.Status = domain.QuoteStatus(status)

	return &quote, nil
}

// UpdateStatus moves a stored quote from one status to another in a single statement.
func (s *QuoteStore) UpdateStatus(ctx context.Context, id string, from, to domain.QuoteStatus) error {
	now := s.now().UnixNano()
	result, err := s.db.ExecContext(ctx,
		`UPDATE quotes SET status = ? WHERE id = ? AND status = ? AND expires_at > ?`,
		string(to), id, string(from), now)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	if affected > 0 {
		return nil
	}

	var current string
	err = s.db.QueryRowContext(ctx,
		`SELECT status FROM quotes WHERE id = ? AND expires_at > ?`, id, now,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrQuoteNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load quote status: %w", err)
	}

	return fmt.Errorf("%w: %s is %s, not %s", domain.ErrQuoteStatusChanged, id, current, from)
}

// PurgeExpired deletes quotes past their expiry and returns how many were removed.
func (s *QuoteStore) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge quotes: %w", err)
	}

	return result.RowsAffected()
}

// RunPurger deletes expired quotes every interval until ctx is cancelled.
func (s *QuoteStore) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.PurgeExpired(ctx)
			if err != nil {
				observability.FromContext(ctx).Warn("quote purge failed", observability.Error(err))
				continue
			}
			if removed > 0 {
				observability.FromContext(ctx).Debug("expired quotes purged", observability.Int64("removed", removed))
			}
		}
	}
}
