package models

import "time"

// UsedToken is a ledger entry for a magic-link token that has been redeemed.
type UsedToken struct {
	JTI       string    `json:"jti" db:"jti"`
	Email     string    `json:"email" db:"email"`
	UsedAt    time.Time `json:"used_at" db:"used_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

func (t *UsedToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
