package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"solarverify/internal/models"
)

// UsageRepository records analyses per hashed subject (email or client id).
type UsageRepository interface {
	Record(ctx context.Context, e *models.UsageEvent) error
	CountSince(ctx context.Context, subjectHash, kind string, since time.Time) (int, error)
	// List returns the subject's events, newest first.
	List(ctx context.Context, subjectHash, kind string) ([]models.UsageEvent, error)
}

type usageRepository struct {
	DB *sqlx.DB
}

func NewUsageRepository(db *sqlx.DB) UsageRepository {
	return &usageRepository{DB: db}
}

func (r *usageRepository) Record(ctx context.Context, e *models.UsageEvent) error {
	q := r.DB.Rebind(`
		INSERT INTO usage_events (subject_hash, kind, grade, system_size_kw, price_per_kw, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if _, err := r.DB.ExecContext(ctx, q,
		e.SubjectHash,
		e.Kind,
		string(e.Grade),
		e.SystemSizeKW,
		e.PricePerKW,
		e.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("usage record: %w", err)
	}
	return nil
}

func (r *usageRepository) CountSince(ctx context.Context, subjectHash, kind string, since time.Time) (int, error) {
	q := r.DB.Rebind(`
		SELECT COUNT(*) FROM usage_events
		WHERE subject_hash = ? AND kind = ? AND created_at > ?
	`)
	var n int
	if err := r.DB.GetContext(ctx, &n, q, subjectHash, kind, since.UTC()); err != nil {
		return 0, fmt.Errorf("usage count: %w", err)
	}
	return n, nil
}

func (r *usageRepository) List(ctx context.Context, subjectHash, kind string) ([]models.UsageEvent, error) {
	q := r.DB.Rebind(`
		SELECT id, subject_hash, kind, grade, system_size_kw, price_per_kw, created_at
		FROM usage_events
		WHERE subject_hash = ? AND kind = ?
		ORDER BY created_at DESC, id DESC
	`)
	events := []models.UsageEvent{}
	if err := r.DB.SelectContext(ctx, &events, q, subjectHash, kind); err != nil {
		return nil, fmt.Errorf("usage list: %w", err)
	}
	return events, nil
}
