// Package storage persists recommendation snapshots in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/smartinvest/db/migrations"
	"github.com/guttosm/smartinvest/internal/domain/models"
	pq "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SnapshotRepository defines the contract for snapshot persistence.
type SnapshotRepository interface {
	// Record appends one snapshot.
	Record(ctx context.Context, s models.Snapshot) error
	// List returns the most recent snapshots of symbol, newest first.
	List(ctx context.Context, symbol string, limit int) ([]models.Snapshot, error)
}

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository builds a SnapshotRepository over an open pool.
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Migrate applies the embedded goose migrations.
//
// Parameters:
//   - db: an open PostgreSQL pool.
//
// Returns:
//   - error: when the dialect cannot be set or a migration fails.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *snapshotRepository) Record(ctx context.Context, s models.Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_snapshots (id, symbol, action, confidence, score, overall_sentiment, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Symbol, string(s.Action), s.Confidence, s.Score,
		nullFloat(s.OverallSentiment), nullFloat(s.Price), s.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("insert snapshot %s (%s): %w", s.ID, pqErr.Code.Name(), err)
		}
		return fmt.Errorf("insert snapshot %s: %w", s.ID, err)
	}
	return nil
}

func (r *snapshotRepository) List(ctx context.Context, symbol string, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, symbol, action, confidence, score, overall_sentiment, price, created_at
		FROM analysis_snapshots
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Snapshot{}
	for rows.Next() {
		var (
			s                models.Snapshot
			action           string
			sentiment, price sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Symbol, &action, &s.Confidence, &s.Score, &sentiment, &price, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Action = models.Action(action)
		s.OverallSentiment = floatPtr(sentiment)
		s.Price = floatPtr(price)
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

// nullFloat maps nil to SQL NULL.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
