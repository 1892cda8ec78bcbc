package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// UsedTokenRepository is the single-use ledger for magic-link tokens.
// MarkUsed must be atomic: among concurrent callers for one jti exactly one
// observes first == true.
type UsedTokenRepository interface {
	MarkUsed(ctx context.Context, jti, email string, expiresAt time.Time) (first bool, err error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type usedTokenRepository struct {
	DB  *sqlx.DB
	now func() time.Time
}

func NewUsedTokenRepository(db *sqlx.DB) UsedTokenRepository {
	return &usedTokenRepository{DB: db, now: time.Now}
}

func (r *usedTokenRepository) MarkUsed(ctx context.Context, jti, email string, expiresAt time.Time) (bool, error) {
	q := r.DB.Rebind(`
		INSERT INTO used_tokens (jti, email, used_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (jti) DO NOTHING
	`)
	res, err := r.DB.ExecContext(ctx, q, jti, email, r.now().UTC(), expiresAt.UTC())
	if err != nil {
		return false, fmt.Errorf("used token mark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("used token mark: %w", err)
	}
	return n == 1, nil
}

// PurgeExpired drops ledger rows whose token can no longer pass the expiry
// check anyway.
func (r *usedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q := r.DB.Rebind(`DELETE FROM used_tokens WHERE expires_at < ?`)
	res, err := r.DB.ExecContext(ctx, q, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("used token purge: %w", err)
	}
	return res.RowsAffected()
}
