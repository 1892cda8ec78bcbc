package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"solarverify/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts the user, or loads the existing row when the email is
	// already registered. created reports which happened.
	Create(ctx context.Context, user *models.User) (created bool, err error)
	LinkClient(ctx context.Context, userID int64, clientID string) error
	IncrementChecks(ctx context.Context, userID int64) error
	MarkVerified(ctx context.Context, email string, at time.Time) (bool, error)
	// RecordConsent stores the time the user agreed to data processing. An
	// earlier consent is kept.
	RecordConsent(ctx context.Context, email string, at time.Time) (bool, error)
}

type userRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, email_hash, client_id, free_checks_used, free_checks_limit,
		       email_verified, verified_at, gdpr_consent, consent_at, created_at`

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := r.DB.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	u := &models.User{}
	if err := r.DB.GetContext(ctx, u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	q := r.DB.Rebind(`
		INSERT INTO users (email, email_hash, client_id, free_checks_used, free_checks_limit, email_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`)
	err := r.DB.QueryRowxContext(ctx, q,
		user.Email,
		user.EmailHash,
		user.ClientID,
		user.FreeChecksUsed,
		user.FreeChecksLimit,
		user.EmailVerified,
		user.CreatedAt,
	).Scan(&user.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("user create: %w", err)
	}

	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("user create: %q vanished after conflict", user.Email)
	}
	*user = *existing
	return false, nil
}

func (r *userRepository) LinkClient(ctx context.Context, userID int64, clientID string) error {
	q := r.DB.Rebind(`UPDATE users SET client_id = ? WHERE id = ?`)
	if _, err := r.DB.ExecContext(ctx, q, clientID, userID); err != nil {
		return fmt.Errorf("user link client: %w", err)
	}
	return nil
}

func (r *userRepository) IncrementChecks(ctx context.Context, userID int64) error {
	q := r.DB.Rebind(`UPDATE users SET free_checks_used = free_checks_used + 1 WHERE id = ?`)
	if _, err := r.DB.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("user increment checks: %w", err)
	}
	return nil
}

func (r *userRepository) MarkVerified(ctx context.Context, email string, at time.Time) (bool, error) {
	q := r.DB.Rebind(`UPDATE users SET email_verified = TRUE, verified_at = ? WHERE email = ?`)
	res, err := r.DB.ExecContext(ctx, q, at, email)
	if err != nil {
		return false, fmt.Errorf("user mark verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("user mark verified: %w", err)
	}
	return n > 0, nil
}

func (r *userRepository) RecordConsent(ctx context.Context, email string, at time.Time) (bool, error) {
	q := r.DB.Rebind(`
		UPDATE users SET gdpr_consent = TRUE, consent_at = COALESCE(consent_at, ?)
		WHERE email = ?
	`)
	res, err := r.DB.ExecContext(ctx, q, at.UTC(), email)
	if err != nil {
		return false, fmt.Errorf("user record consent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("user record consent: %w", err)
	}
	return n > 0, nil
}
